package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eviction-cares/internal/models"
)

func TestReadTableCSV(t *testing.T) {
	input := "\ufeffCase Number, Filed ,Address\nA1,1/2/23,12 Main St\nA2,1/3/23\n"

	table, err := ReadTable("upload.csv", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Case Number", "Filed", "Address"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"A1", "1/2/23", "12 Main St"}, table.Rows[0])
	assert.Equal(t, []string{"A2", "1/3/23", ""}, table.Rows[1], "short rows are padded")
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"caseID", "defendantAddress1"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"B7", "9 Elm St"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := ReadTable("upload.XLSX", buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"caseID", "defendantAddress1"}, table.Columns)
	assert.Equal(t, [][]string{{"B7", "9 Elm St"}}, table.Rows)
}

func TestReadTableRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		input    string
	}{
		{"empty csv", "a.csv", ""},
		{"unbalanced quotes", "a.csv", "a,b\n\"x,y\n"},
		{"unsupported extension", "a.pdf", "a,b\n"},
		{"not a workbook", "a.xlsx", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(tt.filename, strings.NewReader(tt.input))
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestTableHeadAndByColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}},
	}

	head := table.Head(2)
	assert.Len(t, head.Rows, 2)
	assert.Len(t, table.Head(10).Rows, 3)

	assert.Equal(t, map[string][]string{"a": {"1", "3"}, "b": {"2", "4"}}, head.ByColumn())
}
