package crm

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the spreadsheet reader used by the import command.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads a worksheet and returns all rows as string slices, first row
// included.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "crm: open xlsx")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("crm: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("crm: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

// RowsToRecords converts header-driven spreadsheet rows into generic records
// ready to be written as a category JSON file. Header cells name raw record
// fields ("id", "name", "investment_min", ...); cells under a "pref:"-prefixed
// header become entries in the record's preferences object. Empty cells are
// omitted so the lenient record parser treats them as unset.
func RowsToRecords(rows [][]string) ([]map[string]any, error) {
	if len(rows) == 0 {
		return nil, eris.New("crm: no rows to import")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	var records []map[string]any
	for _, row := range rows[1:] {
		rec := make(map[string]any)
		prefs := make(map[string]string)
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if key, ok := strings.CutPrefix(header[i], "pref:"); ok {
				prefs[strings.TrimSpace(key)] = cell
				continue
			}
			rec[header[i]] = cell
		}
		if len(rec) == 0 && len(prefs) == 0 {
			continue
		}
		if len(prefs) > 0 {
			rec["preferences"] = prefs
		}
		records = append(records, rec)
	}
	return records, nil
}
