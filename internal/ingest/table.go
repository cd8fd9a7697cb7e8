package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eviction-cares/internal/models"
)

// Table is an uploaded file: a header row and string cells
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTable reads a .csv or .xlsx upload. The first row is the header; for
// workbooks only the first sheet is read.
func ReadTable(name string, r io.Reader) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt", "":
		return readCSV(r)
	case ".xlsx", ".xlsm":
		return readXLSX(r)
	default:
		return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("unsupported file type %q", ext)}
	}
}

func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.ValidationError{Field: "file", Reason: "file is empty"}
	}
	if err != nil {
		return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("failed to read header: %v", err)}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Columns: trimAll(header)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("unparseable file: %v", err)}
		}
		t.Rows = append(t.Rows, t.fit(record))
	}
	return t, nil
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &models.ValidationError{Field: "file", Reason: fmt.Sprintf("unparseable workbook: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &models.ValidationError{Field: "file", Reason: "file is empty"}
	}

	t := &Table{Columns: trimAll(rows[0])}
	for _, row := range rows[1:] {
		t.Rows = append(t.Rows, t.fit(row))
	}
	return t, nil
}

// fit pads or cuts a record to the header width. Spreadsheet readers drop
// trailing empty cells.
func (t *Table) fit(record []string) []string {
	row := make([]string, len(t.Columns))
	copy(row, record)
	return row
}

// Head returns a table holding the header and at most n rows
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// ByColumn returns the cells keyed by column name, in row order
func (t *Table) ByColumn() map[string][]string {
	out := make(map[string][]string, len(t.Columns))
	for i, col := range t.Columns {
		values := make([]string, len(t.Rows))
		for r, row := range t.Rows {
			values[r] = row[i]
		}
		out[col] = values
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
