// Package fetcher loads external data files that configure extraction,
// currently the XLSX test-field table used by template matching.
package fetcher

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/labreport-cli/internal/model"
)

// templateHeaderRow is the zero-based row index of the header row in the
// lab's field table export. The rows above it are letterhead.
const templateHeaderRow = 9

// Columns that must be present in the header row for a sheet to be usable.
var requiredTemplateColumns = []string{"test_name", "specimen", "units", "reference_value"}

// LoadTemplate reads a test-field table from an XLSX workbook. Every sheet
// is scanned; rows missing a test name are skipped with a warning rather
// than failing the load. An error is returned only when no usable row
// exists anywhere in the workbook.
func LoadTemplate(path string) ([]model.TemplateRow, []string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "fetcher: open template workbook")
	}

	var (
		rows     []model.TemplateRow
		warnings []string
	)

	for _, sheet := range f.Sheets {
		sheetRows, sheetWarnings := loadSheet(sheet)
		rows = append(rows, sheetRows...)
		warnings = append(warnings, sheetWarnings...)
	}

	if len(rows) == 0 {
		return nil, warnings, eris.Errorf("fetcher: no usable template rows in %s", path)
	}

	return rows, warnings, nil
}

// loadSheet parses one sheet. A sheet too short to contain the header row,
// or missing a required column, is skipped with a single warning.
func loadSheet(sheet *xlsx.Sheet) ([]model.TemplateRow, []string) {
	if len(sheet.Rows) <= templateHeaderRow {
		return nil, []string{fmt.Sprintf("sheet %q: no header row", sheet.Name)}
	}

	cols := headerIndex(rowToStrings(sheet.Rows[templateHeaderRow]))
	for _, required := range requiredTemplateColumns {
		if _, ok := cols[required]; !ok {
			return nil, []string{fmt.Sprintf("sheet %q: missing column %q", sheet.Name, required)}
		}
	}

	var (
		rows     []model.TemplateRow
		warnings []string
	)

	for i, row := range sheet.Rows[templateHeaderRow+1:] {
		cells := rowToStrings(row)

		name := cellAt(cells, cols["test_name"])
		if name == "" {
			if !emptyRow(cells) {
				warnings = append(warnings, fmt.Sprintf("sheet %q row %d: missing test name", sheet.Name, templateHeaderRow+2+i))
			}
			continue
		}

		tr := model.TemplateRow{
			TestName:       name,
			Specimen:       cellAt(cells, cols["specimen"]),
			Units:          cellAt(cells, cols["units"]),
			ReferenceValue: cellAt(cells, cols["reference_value"]),
		}
		if idx, ok := cols["category"]; ok {
			tr.Category = model.Category(strings.ToLower(cellAt(cells, idx)))
		}
		if idx, ok := cols["method"]; ok {
			tr.Method = cellAt(cells, idx)
		}

		rows = append(rows, tr)
	}

	return rows, warnings
}

// headerIndex maps normalized column names to their cell positions.
// Headers are trimmed, lowercased, and inner whitespace becomes "_", so
// "Reference Value" and "reference_value" address the same column.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(raw))), "_")
		if name == "" {
			continue
		}
		if _, exists := cols[name]; !exists {
			cols[name] = i
		}
	}
	return cols
}

func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
