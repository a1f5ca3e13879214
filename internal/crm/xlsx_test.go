package crm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"id", "name"},
			{"cp1", "Northbridge Capital"},
		},
	})

	rows, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "name"}, rows[0])
	assert.Equal(t, []string{"cp1", "Northbridge Capital"}, rows[1])
}

func TestReadXLSX_SheetName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"First":  {{"a"}},
		"Second": {{"x", "y"}},
	})

	rows, err := ReadXLSX(path, XLSXOptions{SheetName: "Second"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"x", "y"}, rows[0])

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
}

func TestRowsToRecords(t *testing.T) {
	rows := [][]string{
		{"id", "name", "investment_min", "pref:energy_infra", "pref:real_estate"},
		{"cp1", "Northbridge Capital", "$25M", "Y", "N"},
		{"cp2", "Aldgate Partners", "", "", ""},
		{"", "", "", "", ""},
	}

	records, err := RowsToRecords(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "cp1", first["id"])
	assert.Equal(t, "$25M", first["investment_min"])
	prefs, ok := first["preferences"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Y", prefs["energy_infra"])
	assert.Equal(t, "N", prefs["real_estate"])

	// Empty cells omitted entirely.
	second := records[1]
	assert.Equal(t, "Aldgate Partners", second["name"])
	_, hasPrefs := second["preferences"]
	assert.False(t, hasPrefs)
}

func TestRowsToRecords_Empty(t *testing.T) {
	_, err := RowsToRecords(nil)
	require.Error(t, err)
}
