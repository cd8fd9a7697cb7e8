package ingest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/eviction-cares/internal/models"
)

// Required column names after renaming
const (
	ColFileDate          = "fileDate"
	ColCaseID            = "caseID"
	ColPlaintiff         = "plaintiff"
	ColPlaintiffAddress  = "plaintiffAddress"
	ColPlaintiffCity     = "plaintiffCity"
	ColDefendantAddress1 = "defendantAddress1"
	ColDefendantCity1    = "defendantCity1"
)

// RequiredColumns is the projection applied to every upload
var RequiredColumns = []string{
	ColFileDate, ColCaseID, ColPlaintiff, ColPlaintiffAddress,
	ColPlaintiffCity, ColDefendantAddress1, ColDefendantCity1,
}

// ColumnMapping renames upload columns (source name -> required name).
// Columns not named in the mapping keep their own names.
type ColumnMapping map[string]string

type mappingFile struct {
	Columns map[string]string `yaml:"columns"`
}

// LoadMappingFile reads a YAML mapping of the form
//
//	columns:
//	  Case Number: caseID
//	  Filed: fileDate
func LoadMappingFile(path string) (ColumnMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, &models.ValidationError{Field: "mapping", Reason: fmt.Sprintf("invalid mapping file: %v", err)}
	}
	return ColumnMapping(mf.Columns), nil
}

// ParseMappingPairs builds a mapping from "target=source" flags
func ParseMappingPairs(pairs []string) (ColumnMapping, error) {
	m := make(ColumnMapping, len(pairs))
	for _, p := range pairs {
		target, source, ok := strings.Cut(p, "=")
		target, source = strings.TrimSpace(target), strings.TrimSpace(source)
		if !ok || target == "" || source == "" {
			return nil, &models.ValidationError{Field: "mapping", Reason: fmt.Sprintf("expected target=source, got %q", p)}
		}
		m[source] = target
	}
	return m, nil
}

// Merge returns a mapping with other's entries layered over m
func (m ColumnMapping) Merge(other ColumnMapping) ColumnMapping {
	out := make(ColumnMapping, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Rename applies the mapping to a header row
func (m ColumnMapping) Rename(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		if target, ok := m[c]; ok {
			out[i] = target
		} else {
			out[i] = c
		}
	}
	return out
}

// Validate checks that every required column is present exactly once after
// renaming. It returns the column index of each required column.
func Validate(t *Table, m ColumnMapping) (map[string]int, error) {
	index := make(map[string]int, len(RequiredColumns))
	var duplicated []string
	for i, name := range m.Rename(t.Columns) {
		if _, seen := index[name]; seen {
			duplicated = append(duplicated, name)
			continue
		}
		index[name] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, models.MissingColumns(missing)
	}

	for _, name := range duplicated {
		for _, col := range RequiredColumns {
			if name == col {
				return nil, &models.ValidationError{Field: "columns", Reason: fmt.Sprintf("column %s is mapped more than once", name)}
			}
		}
	}

	projected := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		projected[col] = index[col]
	}
	return projected, nil
}

// String renders the mapping in a stable order for logs
func (m ColumnMapping) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = m[k] + "=" + k
	}
	return strings.Join(parts, ",")
}
