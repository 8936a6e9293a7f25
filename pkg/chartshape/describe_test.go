package chartshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s := salesShape(t)
	s.SetPosition(1, 2)

	d := Describe(s, false)

	assert.Equal(t, s.ID().String(), d.ID)
	assert.Equal(t, "sales", d.Name)
	assert.Equal(t, "line", d.ChartType)
	assert.Equal(t, "stacked", d.Subtype)
	assert.True(t, d.ThreeD)
	assert.Equal(t, "Sales", d.Title)
	assert.Empty(t, d.Subtitle)
	assert.Equal(t, "bottom", d.Legend)
	assert.Equal(t, "local-table.A1:D4", d.Region)
	assert.Equal(t, "rows", d.Direction)
	assert.Equal(t, 1.0, d.L)
	assert.Equal(t, 2.0, d.T)
	assert.Equal(t, 12.0, d.W)
	assert.Empty(t, d.Tables)

	require.Len(t, d.Series, 3)
	assert.Equal(t, "Row 2", d.Series[1].Label)
	assert.Equal(t, "#cc0000", d.Series[1].Color)
	assert.Equal(t, "bar", d.Series[1].ChartType)
	assert.Empty(t, d.Series[0].ChartType)
	assert.Equal(t, []float64{2, 3, 4}, values(d.Series[1].Values))

	require.Len(t, d.Axes, 2)
	assert.Equal(t, "y", d.Axes[1].Dimension)
	assert.Equal(t, "Units", d.Axes[1].Title)
}

func TestDescribeTables(t *testing.T) {
	s := newTestShape(t, DefaultOptions())
	require.NoError(t, s.UseDefaultData())

	d := Describe(s, true)

	require.Len(t, d.Tables, 1)
	tbl := d.Tables[0]
	assert.Equal(t, "local-table", tbl.Name)
	assert.False(t, tbl.External)
	assert.Equal(t, 4, tbl.RowCount)
	require.Len(t, tbl.Rows, 4)
	assert.Equal(t, 1, tbl.Rows[0].R)
	assert.NotContains(t, tbl.Rows[0].C, "1")
	assert.Equal(t, "Column 1", tbl.Rows[0].C["2"])
	assert.Equal(t, 1.0, tbl.Rows[1].C["2"])
}

func TestNewDocument(t *testing.T) {
	s := newTestShape(t, DefaultOptions())
	doc := NewDocument("charts.odg", []*Shape{s}, []*LoadError{
		NewLoadError("Object 2", "chart", ErrUnsupportedChartClass),
	}, false)

	assert.Equal(t, "charts.odg", doc.Source)
	require.Len(t, doc.Shapes, 1)
	assert.NotNil(t, doc.Shapes[0].Series)
	assert.Equal(t, []string{`load error in "Object 2" (chart): unsupported chart class`}, doc.Errors)
}
