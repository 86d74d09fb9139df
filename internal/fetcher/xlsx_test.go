package fetcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/labreport-cli/internal/model"
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
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "template.xlsx")
	err := f.Save(path)
	require.NoError(t, err)
	return path
}

// templateSheet builds a sheet with the letterhead rows above the header.
func templateSheet(dataRows ...[]string) [][]string {
	rows := make([][]string, 0, templateHeaderRow+1+len(dataRows))
	for i := 0; i < templateHeaderRow; i++ {
		rows = append(rows, []string{"City Diagnostic Centre"})
	}
	rows = append(rows, []string{"Test Name", "Specimen", "Units", "Reference Value", "Category", "Method"})
	rows = append(rows, dataRows...)
	return rows
}

func TestLoadTemplate_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": templateSheet(
			[]string{"Haemoglobin", "EDTA", "g/dL", "13.0 - 17.0", "Haematology", ""},
			[]string{"Serum Creatinine", "SERUM", "mg/dL", "0.6 - 1.2", "Biochemistry", "Jaffe"},
		),
	})

	rows, warnings, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 2)

	assert.Equal(t, "Haemoglobin", rows[0].TestName)
	assert.Equal(t, "EDTA", rows[0].Specimen)
	assert.Equal(t, "g/dL", rows[0].Units)
	assert.Equal(t, "13.0 - 17.0", rows[0].ReferenceValue)
	assert.Equal(t, model.CategoryHaematology, rows[0].Category)

	assert.Equal(t, "Jaffe", rows[1].Method)
	assert.Equal(t, model.CategoryBiochemistry, rows[1].Category)
}

func TestLoadTemplate_MissingNameRowWarned(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": templateSheet(
			[]string{"", "EDTA", "g/dL", "13.0 - 17.0"},
			[]string{"Haemoglobin", "EDTA", "g/dL", "13.0 - 17.0"},
		),
	})

	rows, warnings, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "missing test name")
}

func TestLoadTemplate_BlankRowsIgnoredSilently(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": templateSheet(
			[]string{"Haemoglobin", "EDTA", "g/dL", "13.0 - 17.0"},
			[]string{"", "", "", ""},
		),
	})

	rows, warnings, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Empty(t, warnings)
}

func TestLoadTemplate_MissingRequiredColumn(t *testing.T) {
	rows := make([][]string, templateHeaderRow)
	for i := range rows {
		rows[i] = []string{"letterhead"}
	}
	rows = append(rows, []string{"Test Name", "Specimen", "Units"}) // no reference_value
	rows = append(rows, []string{"Haemoglobin", "EDTA", "g/dL"})

	path := createTestXLSX(t, map[string][][]string{"Sheet1": rows})

	_, warnings, err := LoadTemplate(path)
	assert.Error(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "reference_value")
}

func TestLoadTemplate_ShortSheet(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"only one row"}},
	})

	_, warnings, err := LoadTemplate(path)
	assert.Error(t, err)
	assert.Len(t, warnings, 1)
}

func TestLoadTemplate_MultipleSheets(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Haematology":  templateSheet([]string{"Haemoglobin", "EDTA", "g/dL", "13.0 - 17.0"}),
		"Biochemistry": templateSheet([]string{"Blood Urea", "SERUM", "mg/dL", "15 - 40"}),
	})

	rows, _, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	_, _, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
