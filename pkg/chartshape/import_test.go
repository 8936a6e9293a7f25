package chartshape

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
)

// writeWorkbook saves a workbook with a column chart on "Sales" and a
// plain table on "Costs".
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Sales"))

	sales := [][]interface{}{
		{"", "Q1", "Q2", "Q3"},
		{"North", 1, 2, 3},
		{"South", 4, 5, 6},
	}
	for i, row := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sales", cell, &row))
	}
	require.NoError(t, f.AddChart("Sales", "F2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: "Sales!$A$2", Categories: "Sales!$B$1:$D$1", Values: "Sales!$B$2:$D$2"},
			{Name: "Sales!$A$3", Categories: "Sales!$B$1:$D$1", Values: "Sales!$B$3:$D$3"},
		},
		Title: []excelize.RichTextRun{{Text: "Quarterly"}},
	}))

	_, err := f.NewSheet("Costs")
	require.NoError(t, err)
	costs := [][]interface{}{
		{"", "Rent", "Power"},
		{"Jan", 10, 3},
		{"Feb", 10, 4},
	}
	for i, row := range costs {
		cell, err := excelize.CoordinatesToCellName(2, i+3)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Costs", cell, &row))
	}

	_, err = f.NewSheet("Empty")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImport(t *testing.T) {
	book, err := Import(writeWorkbook(t), DefaultOptions())
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, "book.xlsx", book.Name)
	assert.Empty(t, book.Errors)
	require.Len(t, book.Shapes, 2)

	chart := book.Shapes[0]
	assert.Equal(t, models.BarChartType, chart.ChartType())
	assert.Equal(t, "Quarterly", chart.Title.Text)
	assert.True(t, chart.Title.Visible)
	assert.False(t, chart.UsesInternalModelOnly())
	assert.Equal(t, "Sales.B2:D2;Sales.B3:D3", chart.Proxy().Region().String())
	assert.Equal(t, proxy.RowMajor, chart.Proxy().DataDirection())

	sets := chart.PlotArea().DataSets()
	require.Len(t, sets, 2)
	assert.Equal(t, "North", sets[0].Label())
	assert.Equal(t, []float64{4, 5, 6}, values(sets[1].Values()))
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, sets[0].Categories())
	assert.Equal(t, 0, chart.ZIndex())

	costs := book.Shapes[1]
	assert.Equal(t, "Costs", costs.Name)
	assert.Equal(t, "Costs", costs.Title.Text)
	assert.Equal(t, "Costs.B3:D5", costs.Proxy().Region().String())
	assert.Equal(t, 1, costs.ZIndex())
	costSets := costs.PlotArea().DataSets()
	require.Len(t, costSets, 2)
	assert.Equal(t, "Jan", costSets[0].Label())
	assert.Equal(t, []float64{10, 3}, values(costSets[0].Values()))
}

func TestImportLightModeSkipsDefaultCharts(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeLight

	book, err := Import(writeWorkbook(t), opts)
	require.NoError(t, err)
	defer book.Close()

	require.Len(t, book.Shapes, 1)
	assert.Equal(t, "Quarterly", book.Shapes[0].Title.Text)
}

func TestImportWritesPackage(t *testing.T) {
	book, err := Import(writeWorkbook(t), DefaultOptions())
	require.NoError(t, err)
	defer book.Close()

	var buf bytes.Buffer
	require.NoError(t, book.WritePackage(&buf))

	opts := DefaultOptions()
	opts.Sheets = book.Workbook
	shapes, failures, err := ReadPackage(bytes.NewReader(buf.Bytes()), int64(buf.Len()), opts)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, shapes, 2)
	defer func() {
		for _, s := range shapes {
			s.Close()
		}
	}()
	assert.Equal(t, "Sales.B2:D2;Sales.B3:D3", shapes[0].Proxy().Region().String())
	assert.Equal(t, []float64{1, 2, 3}, values(shapes[0].PlotArea().DataSet(0).Values()))
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "none.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestSeriesRegion(t *testing.T) {
	region, dir, err := seriesRegion([]models.ChartSeries{
		{YRange: "'My Data'!$B$2:$B$9"},
		{YRange: "'My Data'!$C$2:$C$9"},
	})
	require.NoError(t, err)
	assert.Equal(t, proxy.ColumnMajor, dir)
	assert.Equal(t, "'My Data'.B2:B9;'My Data'.C2:C9", region.String())

	_, _, err = seriesRegion([]models.ChartSeries{{Name: "no data"}})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = seriesRegion([]models.ChartSeries{{YRange: "B2:B9"}})
	assert.Error(t, err)
}
