package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/companyinfo-cli/internal/model"
)

// recordColumns defines the ordered CSV output columns: schema order, then
// last_updated and raw_text.
var recordColumns = []string{
	"domain",
	"company_name",
	"manufactures_in_house",
	"in_house_details",
	"outsourced",
	"outsourcing_partners",
	"parent_company",
	"affiliate_companies",
	"extraction_status",
	"last_updated",
	"raw_text",
}

// WriteJSON materializes records as an indented JSON array.
func WriteJSON(records []*model.CompanyRecord, outputPath string) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return eris.Wrap(err, "export: marshal records")
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write json")
	}
	return nil
}

// WriteCSV materializes records as a flat CSV, one row per record.
func WriteCSV(records []*model.CompanyRecord, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(recordColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, r := range records {
		if err := w.Write(buildRecordRow(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	return nil
}

// buildRecordRow maps a CompanyRecord to a CSV row in recordColumns order.
func buildRecordRow(r *model.CompanyRecord) []string {
	return []string{
		r.Domain,
		r.CompanyName,
		strOrEmpty(r.ManufacturesInHouse),
		strOrEmpty(r.InHouseDetails),
		strOrEmpty(r.Outsourced),
		jsonCell(r.OutsourcingPartners),
		strOrEmpty(r.ParentCompany),
		jsonCell(r.AffiliateCompanies),
		string(r.ExtractionStatus),
		r.LastUpdated,
		r.RawText,
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// jsonCell renders a list value into a single CSV cell. Empty lists render
// as empty cells rather than "[]" or "null".
func jsonCell(v any) string {
	switch t := v.(type) {
	case []model.Partner:
		if len(t) == 0 {
			return ""
		}
	case []string:
		if len(t) == 0 {
			return ""
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
