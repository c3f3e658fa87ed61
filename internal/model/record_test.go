package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendText_Accumulates(t *testing.T) {
	rec := NewCompanyRecord("sample.com", "Sample Inc.")

	rec.AppendText("first page ")
	rec.AppendText("second page")
	rec.AppendText("second page")

	// Append-only, no separator management, no dedup.
	assert.Equal(t, "first page second pagesecond page", rec.RawText)
}

func TestAppendText_Deterministic(t *testing.T) {
	build := func() string {
		rec := NewCompanyRecord("sample.com", "Sample Inc.")
		for _, page := range []string{"a", "b", "c"} {
			rec.AppendText(page)
		}
		return rec.RawText
	}

	assert.Equal(t, build(), build())
}

func TestExtractionStatus_Valid(t *testing.T) {
	for _, s := range []ExtractionStatus{StatusExplicit, StatusDeduced, StatusNotFound, StatusParseError} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ExtractionStatus("maybe").Valid())
	assert.False(t, ExtractionStatus("").Valid())
}

func TestCompanyRecord_JSONNulls(t *testing.T) {
	rec := NewCompanyRecord("sample.com", "Sample Inc.")

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	// Unfilled structured fields serialize as explicit nulls, not dropped keys.
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "manufactures_in_house")
	assert.Nil(t, m["manufactures_in_house"])
	assert.Contains(t, m, "parent_company")
	assert.Nil(t, m["parent_company"])
}
