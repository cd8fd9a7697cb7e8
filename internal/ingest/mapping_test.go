package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eviction-cares/internal/models"
)

func TestParseMappingPairs(t *testing.T) {
	m, err := ParseMappingPairs([]string{"caseID=Case Number", " fileDate = Filed "})
	require.NoError(t, err)
	assert.Equal(t, ColumnMapping{"Case Number": "caseID", "Filed": "fileDate"}, m)

	_, err = ParseMappingPairs([]string{"caseID"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLoadMappingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	content := "columns:\n  Case Number: caseID\n  Filed: fileDate\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := LoadMappingFile(path)
	require.NoError(t, err)
	assert.Equal(t, ColumnMapping{"Case Number": "caseID", "Filed": "fileDate"}, m)

	_, err = LoadMappingFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	full := []string{"Filed", "Case Number", "plaintiff", "plaintiffAddress", "plaintiffCity", "defendantAddress1", "defendantCity1", "Extra"}
	mapping := ColumnMapping{"Filed": "fileDate", "Case Number": "caseID"}

	t.Run("all present", func(t *testing.T) {
		index, err := Validate(&Table{Columns: full}, mapping)
		require.NoError(t, err)
		assert.Equal(t, 0, index[ColFileDate])
		assert.Equal(t, 1, index[ColCaseID])
		assert.Len(t, index, len(RequiredColumns))
	})

	t.Run("missing columns are named", func(t *testing.T) {
		_, err := Validate(&Table{Columns: full[:4]}, mapping)
		require.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "plaintiffCity")
		assert.Contains(t, err.Error(), "defendantAddress1")
	})

	t.Run("required column mapped twice", func(t *testing.T) {
		cols := append(append([]string{}, full...), "Case")
		m := mapping.Merge(ColumnMapping{"Case": "caseID"})
		_, err := Validate(&Table{Columns: cols}, m)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestColumnMappingString(t *testing.T) {
	m := ColumnMapping{"b": "caseID", "a": "fileDate"}
	assert.Equal(t, "fileDate=a,caseID=b", m.String())
}
