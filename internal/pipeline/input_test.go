package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseInputCSV(t *testing.T) {
	path := writeTempCSV(t, "company_name,domain\nSample Inc.,sample.com\nAcme Corp,\n,\n")

	rows, err := ParseInputCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, InputRow{CompanyName: "Sample Inc.", Domain: "sample.com"}, rows[0])
	assert.Equal(t, InputRow{CompanyName: "Acme Corp"}, rows[1])
	// Fully empty rows are kept; the orchestrator skips them with a warning.
	assert.Equal(t, InputRow{}, rows[2])
}

func TestParseInputCSV_ToleratesBOM(t *testing.T) {
	path := writeTempCSV(t, "\ufeffcompany_name,domain\nSample Inc.,sample.com\n")

	rows, err := ParseInputCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sample Inc.", rows[0].CompanyName)
}

func TestParseInputCSV_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "name,url\nSample Inc.,sample.com\n")

	_, err := ParseInputCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company_name")
}

func TestParseInputCSV_MissingFile(t *testing.T) {
	_, err := ParseInputCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParseInputCSV_TrimsWhitespace(t *testing.T) {
	path := writeTempCSV(t, "company_name,domain\n  Sample Inc.  ,  sample.com  \n")

	rows, err := ParseInputCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "Sample Inc.", rows[0].CompanyName)
	assert.Equal(t, "sample.com", rows[0].Domain)
}
