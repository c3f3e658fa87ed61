// Package model defines the company record accumulated by the crawl and
// filled by extraction.
package model

// ExtractionStatus classifies how extracted facts were obtained.
type ExtractionStatus string

const (
	// StatusExplicit means the fact was stated directly in the source text.
	StatusExplicit ExtractionStatus = "explicit"
	// StatusDeduced means the fact was inferred from the source text.
	StatusDeduced ExtractionStatus = "deduced"
	// StatusNotFound means no supporting text was found.
	StatusNotFound ExtractionStatus = "not_found"
	// StatusParseError marks records whose structured response could not be
	// parsed. Distinguishes a broken extraction from a genuine not_found.
	StatusParseError ExtractionStatus = "parse_error"
)

// Valid reports whether s is one of the known status values.
func (s ExtractionStatus) Valid() bool {
	switch s {
	case StatusExplicit, StatusDeduced, StatusNotFound, StatusParseError:
		return true
	}
	return false
}

// PageSource tags where a fetched page came from.
type PageSource string

const (
	SourceProvided   PageSource = "provided"    // domain given in the input row
	SourceOfficial   PageSource = "official"    // top search result
	SourceThirdParty PageSource = "third_party" // marketplace listing
)

// Partner is a third-party manufacturer. Name and Website are always present
// on successful extractions; Contact may be null.
type Partner struct {
	Name    string  `json:"name"`
	Website string  `json:"website"`
	Contact *string `json:"contact"`
}

// CompanyRecord accumulates raw page text for one company and holds the
// structured facts filled in by extraction. Domain is set at creation from
// the chosen URL's host and never changes afterward.
type CompanyRecord struct {
	Domain              string           `json:"domain"`
	CompanyName         string           `json:"company_name"`
	ManufacturesInHouse *string          `json:"manufactures_in_house"`
	InHouseDetails      *string          `json:"in_house_details"`
	Outsourced          *string          `json:"outsourced"`
	OutsourcingPartners []Partner        `json:"outsourcing_partners"`
	ParentCompany       *string          `json:"parent_company"`
	AffiliateCompanies  []string         `json:"affiliate_companies"`
	ExtractionStatus    ExtractionStatus `json:"extraction_status"`
	LastUpdated         string           `json:"last_updated"`
	RawText             string           `json:"raw_text"`
}

// NewCompanyRecord creates a record for a company at crawl start.
func NewCompanyRecord(domain, companyName string) *CompanyRecord {
	return &CompanyRecord{
		Domain:      domain,
		CompanyName: companyName,
	}
}

// AppendText concatenates fetched page text onto the record. Text accumulates
// in selection order; overlapping content across pages is kept as-is.
func (r *CompanyRecord) AppendText(text string) {
	r.RawText += text
}
