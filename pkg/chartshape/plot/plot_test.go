package plot

import (
	"fmt"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

func newArea(t *testing.T, name string, grid *table.Grid, region string) (*PlotArea, *proxy.Model, *table.Source) {
	t.Helper()
	src := table.NewSource()
	_, err := src.Add(name, grid)
	require.NoError(t, err)
	p := proxy.New(src)
	a := NewPlotArea(p)
	t.Cleanup(func() {
		a.Close()
		p.Close()
	})
	p.Reset(cellregion.MustParse(region))
	return a, p, src
}

func values(vs []*float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}

func TestEndToEndLabelsAndCategories(t *testing.T) {
	grid := table.GridFromStrings([][]string{
		{"", "Q1", "Q2", "Q3"},
		{"North", "1", "2", "3"},
		{"South", "4", "5", "6"},
	})
	a, p, _ := newArea(t, "Sheet1", grid, "Sheet1.A1:D3")
	p.SetFirstRowIsLabel(true)
	p.SetFirstColumnIsLabel(true)

	sets := a.DataSets()
	require.Len(t, sets, 2)
	assert.Equal(t, "North", sets[0].Label())
	assert.Equal(t, "South", sets[1].Label())
	assert.Equal(t, []float64{1, 2, 3}, values(sets[0].Values()))
	assert.Equal(t, []float64{4, 5, 6}, values(sets[1].Values()))
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, sets[0].Categories())
	assert.Nil(t, sets[0].XValues())
}

func TestGeneratedLabelsAndEmptyCells(t *testing.T) {
	grid := table.GridFromStrings([][]string{
		{"1", "", "x"},
		{"4", "5", "6"},
	})
	a, _, _ := newArea(t, "t", grid, "t.A1:C2")

	sets := a.DataSets()
	require.Len(t, sets, 2)
	assert.Equal(t, "Data Set 1", sets[0].Label())
	assert.Equal(t, "Data Set 2", sets[1].Label())
	assert.Nil(t, sets[0].Categories())

	v := sets[0].Values()
	require.Len(t, v, 3)
	assert.Equal(t, 1.0, *v[0])
	assert.Nil(t, v[1])
	assert.Nil(t, v[2])
}

func TestPaletteWraps(t *testing.T) {
	rows := make([][]string, 13)
	for i := range rows {
		rows[i] = []string{fmt.Sprint(i), "1"}
	}
	a, _, _ := newArea(t, "t", table.GridFromStrings(rows), "t.A1:B13")

	sets := a.DataSets()
	require.Len(t, sets, 13)
	assert.Equal(t, sets[0].Color(), sets[12].Color())
	assert.NotEqual(t, sets[0].Color(), sets[1].Color())
	assert.Equal(t, "#004586", sets[0].Color().Hex())
	assert.Equal(t, "#0084d1", sets[11].Color().Hex())

	red, err := colorful.Hex("#ff0000")
	require.NoError(t, err)
	sets[12].SetColor(red)
	assert.True(t, sets[12].HasColor())
	assert.Equal(t, "#ff0000", sets[12].Color().Hex())
	sets[12].ResetColor()
	assert.Equal(t, sets[0].Color(), sets[12].Color())
}

func TestPalette(t *testing.T) {
	p, err := ParsePalette([]string{"#fff", "#000000"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#ffffff", "#000000"}, p.Hex())
	assert.Equal(t, p[1], p.At(3))
	assert.Equal(t, p[1], p.At(-1))
	assert.Equal(t, colorful.Color{}, Palette{}.At(2))

	_, err = ParsePalette([]string{"blue"})
	assert.Error(t, err)
	assert.Len(t, DefaultPalette(), 12)
}

func TestRemovedTableReadsEmpty(t *testing.T) {
	grid := table.GridFromStrings([][]string{{"1", "2"}, {"3", "4"}})
	a, _, src := newArea(t, "T1", grid, "T1.A1:B2")

	sets := a.DataSets()
	require.Len(t, sets, 2)
	explicit := sets[1]
	explicit.SetYDataRegion(cellregion.MustParse("T1.A1:B2"))
	assert.Equal(t, []float64{1, 2, 3, 4}, values(explicit.Values()))

	region := cellregion.MustParse("T1.A1:B2")
	src.Remove("T1")

	assert.False(t, region.IsValid(src))
	assert.Empty(t, a.DataSets())
	assert.Nil(t, sets[0].Values())
	assert.Nil(t, explicit.Values())
	assert.Equal(t, "Data Set 1", sets[0].Label())
}

func TestExplicitRegions(t *testing.T) {
	grid := table.GridFromStrings([][]string{
		{"name", "Speed"},
		{"1", "10"},
		{"2", "20"},
	})
	a, _, _ := newArea(t, "t", grid, "t.B2:B3")

	sets := a.DataSets()
	require.Len(t, sets, 2)
	ds := sets[0]
	ds.SetLabelRegion(cellregion.MustParse("t.B1"))
	ds.SetXDataRegion(cellregion.MustParse("t.A2:A3"))
	ds.SetYDataRegion(cellregion.MustParse("t.B2:B3"))
	ds.SetCategoryRegion(cellregion.MustParse("t.A2:A3"))

	assert.Equal(t, "Speed", ds.Label())
	assert.Equal(t, []float64{1, 2}, values(ds.XValues()))
	assert.Equal(t, []float64{10, 20}, values(ds.Values()))
	assert.Equal(t, []string{"1", "2"}, ds.Categories())
	assert.Equal(t, "t.B1", ds.LabelRegion().String())

	ds.SetYDataRegion(cellregion.MustParse("t.B2:B9"))
	assert.Nil(t, ds.Values())
}

func TestCombinability(t *testing.T) {
	grid := table.GridFromStrings([][]string{{"1", "2"}, {"3", "4"}})
	a, _, _ := newArea(t, "t", grid, "t.A1:B2")
	ds := a.DataSet(0)
	require.NotNil(t, ds)

	assert.Equal(t, models.NoChartType, ds.ChartType())
	assert.Equal(t, models.BarChartType, a.EffectiveChartType(ds))

	require.NoError(t, a.SetDataSetChartType(ds, models.LineChartType))
	assert.Equal(t, models.LineChartType, a.EffectiveChartType(ds))
	assert.Equal(t, models.NormalChartSubtype, a.EffectiveSubtype(ds))
	require.NoError(t, a.SetDataSetSubtype(ds, models.StackedChartSubtype))
	assert.Equal(t, models.StackedChartSubtype, a.EffectiveSubtype(ds))

	err := a.SetDataSetChartType(ds, models.CircleChartType)
	assert.ErrorIs(t, err, ErrNotCombinable)
	assert.Equal(t, models.LineChartType, ds.ChartType())

	a.SetChartType(models.CircleChartType)
	assert.Equal(t, models.NoChartType, ds.ChartType())
	assert.Equal(t, models.NoChartSubtype, a.Subtype())
	assert.ErrorIs(t, a.SetDataSetChartType(ds, models.BarChartType), ErrNotCombinable)
	assert.NoError(t, a.SetDataSetChartType(ds, models.CircleChartType))

	other := newDataSet(nil, 0)
	assert.ErrorIs(t, a.SetDataSetChartType(other, models.LineChartType), ErrUnknownDataSet)
}

func TestPolicy(t *testing.T) {
	p := PolicyFromClasses([]string{"bar", "chart:scatter", "bogus"})
	assert.Equal(t, []models.ChartType{models.BarChartType, models.ScatterChartType}, p.Types())
	assert.True(t, p.Combinable(models.BarChartType, models.ScatterChartType))
	assert.False(t, p.Combinable(models.BarChartType, models.LineChartType))
	assert.True(t, p.Combinable(models.RadarChartType, models.RadarChartType))
	assert.True(t, p.Combinable(models.RadarChartType, models.NoChartType))

	grid := table.GridFromStrings([][]string{{"1"}})
	a, _, _ := newArea(t, "t", grid, "t.A1")
	require.NoError(t, a.SetDataSetChartType(a.DataSet(0), models.AreaChartType))
	a.SetPolicy(p)
	assert.Equal(t, models.NoChartType, a.DataSet(0).ChartType())
}

func TestResetRebuildsDataSets(t *testing.T) {
	grid := table.GridFromStrings([][]string{
		{"1", "2"},
		{"3", "4"},
		{"100", "200"},
		{"300", "400"},
	})
	a, p, _ := newArea(t, "T", grid, "T.A1:B2")
	var resets int
	a.Changed().Connect(func(c table.Change) {
		if c.Kind == table.Reset {
			resets++
		}
	})

	first := a.DataSet(0)
	first.SetYDataRegion(cellregion.MustParse("T.A1:B1"))
	first.SetColor(colorful.Color{R: 1})
	first.ShowValues = true
	require.NoError(t, a.SetDataSetChartType(first, models.LineChartType))
	require.True(t, a.Select(1))

	p.Reset(cellregion.MustParse("T.A3:B4"))
	require.Len(t, a.DataSets(), 2)
	ds := a.DataSet(0)
	assert.NotSame(t, first, ds)
	assert.Equal(t, []float64{100, 200}, values(ds.Values()))
	assert.True(t, ds.YDataRegion().IsEmpty())
	assert.False(t, ds.HasColor())
	assert.False(t, ds.ShowValues)
	assert.Equal(t, models.NoChartType, ds.ChartType())
	assert.Equal(t, -1, a.SelectedIndex())
	assert.Equal(t, 1, resets)
	assert.ErrorIs(t, a.SetDataSetChartType(first, models.LineChartType), ErrUnknownDataSet)
}

func TestDirectionChangeRebuildsDataSets(t *testing.T) {
	grid := table.GridFromStrings([][]string{{"1", "2"}, {"3", "4"}})
	a, p, _ := newArea(t, "T", grid, "T.A1:B2")

	first := a.DataSet(0)
	first.SetYDataRegion(cellregion.MustParse("T.A1:B1"))
	require.NoError(t, a.SetDataSetChartType(first, models.LineChartType))

	p.SetDataDirection(proxy.ColumnMajor)
	ds := a.DataSet(0)
	require.NotNil(t, ds)
	assert.True(t, ds.YDataRegion().IsEmpty())
	assert.Equal(t, models.NoChartType, ds.ChartType())
	assert.Equal(t, []float64{1, 3}, values(ds.Values()))
}

func TestSubtypeAndThreeDEmitChanges(t *testing.T) {
	a := NewPlotArea(nil)
	var changes int
	a.Changed().Connect(func(table.Change) { changes++ })

	a.SetSubtype(models.StackedChartSubtype)
	a.SetThreeD(true)
	assert.Equal(t, 2, changes)
	assert.Equal(t, models.StackedChartSubtype, a.Subtype())
	assert.True(t, a.ThreeD())
}

func TestAxes(t *testing.T) {
	a := NewPlotArea(nil)
	require.NotNil(t, a.XAxis())
	require.NotNil(t, a.YAxis())
	assert.Nil(t, a.SecondaryYAxis())
	assert.Empty(t, a.DataSets())

	y2 := a.AddAxis(YAxisDimension, "")
	assert.Equal(t, "y-2", y2.Name)
	assert.Same(t, y2, a.SecondaryYAxis())
	y2.SetRange(10, 0)
	assert.False(t, y2.AutoMin)
	assert.Equal(t, 0.0, y2.Min)
	assert.Equal(t, 10.0, y2.Max)

	assert.True(t, a.RemoveAxis(y2))
	assert.False(t, a.RemoveAxis(y2))
	assert.Len(t, a.Axes(), 2)

	a.ClearAxes()
	assert.Nil(t, a.XAxis())

	d, ok := ParseAxisDimension("z")
	assert.True(t, ok)
	assert.Equal(t, ZAxisDimension, d)
}

func TestLegend(t *testing.T) {
	l := NewLegend()
	assert.True(t, l.Visible())
	assert.Equal(t, "end", l.Position.String())

	for _, name := range []string{"none", "top", "bottom", "start", "end", "top-start", "top-end", "bottom-start", "bottom-end"} {
		p, ok := ParseLegendPosition(name)
		require.True(t, ok, name)
		assert.Equal(t, name, p.String())
	}
	p, ok := ParseLegendPosition("left")
	assert.True(t, ok)
	assert.Equal(t, LegendStart, p)
	_, ok = ParseLegendPosition("middle")
	assert.False(t, ok)

	l.Position = LegendNone
	assert.False(t, l.Visible())
	assert.Equal(t, AlignEnd, ParseLegendAlignment(AlignEnd.String()))
	assert.Equal(t, ExpansionWide, ParseLegendExpansion(ExpansionWide.String()))
}
