package pipeline

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// InputRow is one row of the input CSV. Either field may be empty; rows with
// both empty are skipped by the orchestrator.
type InputRow struct {
	CompanyName string `json:"company_name"`
	Domain      string `json:"domain"`
}

// ParseInputCSV reads the input company list. The file must have named
// columns company_name and domain; a UTF-8 byte-order mark on the first line
// is tolerated.
func ParseInputCSV(csvPath string) ([]InputRow, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, eris.Wrap(err, "input: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "input: read csv")
	}

	if len(records) < 1 {
		return nil, eris.New("input: csv is empty")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}

	for _, col := range []string{"company_name", "domain"} {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("input: missing required column %q", col)
		}
	}

	rows := make([]InputRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, InputRow{
			CompanyName: getCol(rec, colIdx, "company_name"),
			Domain:      getCol(rec, colIdx, "domain"),
		})
	}

	return rows, nil
}

// getCol safely retrieves a column value from a CSV row.
func getCol(row []string, colIdx map[string]int, col string) string {
	idx, ok := colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
