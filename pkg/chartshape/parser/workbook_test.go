package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// writeFixture saves a two-sheet workbook and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Header1"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Header2"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 100))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 200.5))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "Text"))

	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Data", "C4", 7))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Data!$A$1:$C$4",
		Scope:    "Data",
	}))

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenWorkbook(t *testing.T) {
	wb, err := OpenWorkbook(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Sheet1", "Data"}, wb.SheetNames())

	m, ok := wb.Sheet("Sheet1")
	require.True(t, ok)
	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, 2, m.ColumnCount())
	assert.Equal(t, models.StringValue("Header1"), m.Cell(0, 0))
	assert.Equal(t, models.NumberValue(100), m.Cell(1, 0))
	assert.Equal(t, models.NumberValue(200.5), m.Cell(1, 1))
	assert.True(t, m.Cell(2, 1).IsEmpty())
	assert.True(t, m.Cell(10, 10).IsEmpty())

	data, ok := wb.Sheet("Data")
	require.True(t, ok)
	assert.Equal(t, 4, data.RowCount())
	assert.Equal(t, 3, data.ColumnCount())

	_, ok = wb.Sheet("Missing")
	assert.False(t, ok)
}

func TestOpenWorkbookMissingFile(t *testing.T) {
	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestSheetModelSetCell(t *testing.T) {
	wb, err := OpenWorkbook(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	s := wb.SheetModel("Sheet1")
	require.NotNil(t, s)

	var changes []table.Change
	s.Changed().Connect(func(c table.Change) { changes = append(changes, c) })

	require.NoError(t, s.SetCell(4, 0, models.NumberValue(42)))
	assert.Equal(t, 5, s.RowCount())
	assert.Equal(t, models.NumberValue(42), s.Cell(4, 0))

	v, err := wb.File().GetCellValue("Sheet1", "A5")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	require.NotEmpty(t, changes)
	assert.Equal(t, table.RowsInserted, changes[0].Kind)
	assert.Equal(t, table.DataChanged, changes[len(changes)-1].Kind)

	assert.ErrorIs(t, s.SetCell(-1, 0, models.NumberValue(1)), table.ErrOutOfRange)
}

func TestWorkbookAsSheetAccess(t *testing.T) {
	wb, err := OpenWorkbook(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	src := table.NewSource()
	src.SetSheetAccessModel(wb)

	rows, cols, ok := src.Extent("Sheet1")
	require.True(t, ok)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.True(t, cellregion.MustParse("Sheet1.A1:B3").IsValid(src))
}

func TestExtractPrintAreas(t *testing.T) {
	wb, err := OpenWorkbook(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	areas := ExtractPrintAreas(wb.File())

	require.Contains(t, areas, "Data")
	assert.Equal(t, []cellregion.Range{cellregion.NewRange("Data", 0, 0, 3, 2)}, areas["Data"].Ranges())
	assert.NotContains(t, areas, "Sheet1")
}
