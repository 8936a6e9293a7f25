package plot

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
)

// DataSet is one series of a plot area. Its values are read live from the
// proxy row with the same index unless explicit regions are set.
type DataSet struct {
	area  *PlotArea
	index int

	color     *colorful.Color
	chartType models.ChartType
	subtype   models.ChartSubtype

	labelRegion    cellregion.Region
	yRegion        cellregion.Region
	xRegion        cellregion.Region
	categoryRegion cellregion.Region

	// ShowValues draws the value next to each data point.
	ShowValues bool
	// ShowLabels draws the category next to each data point.
	ShowLabels bool
	// PieExplodeFactor moves pie and ring slices outwards, in percent of
	// the radius.
	PieExplodeFactor int
}

func newDataSet(area *PlotArea, index int) *DataSet {
	return &DataSet{area: area, index: index, chartType: models.NoChartType}
}

// Index returns the position of the series in its plot area.
func (d *DataSet) Index() int { return d.index }

// Label returns the series name: the label region, the proxy header for
// the series, or "Data Set N".
func (d *DataSet) Label() string {
	if !d.labelRegion.IsEmpty() {
		for _, v := range d.area.readRegion(d.labelRegion) {
			if !v.IsEmpty() {
				return v.Text()
			}
		}
	} else if p := d.proxy(); p != nil {
		if h := p.HeaderData(d.index, proxy.Vertical); !h.IsEmpty() {
			return h.Text()
		}
	}
	return fmt.Sprintf("Data Set %d", d.index+1)
}

// Values returns the Y values. Cells that are empty or not numeric give nil
// entries. A series whose data does not resolve has no values.
func (d *DataSet) Values() []*float64 {
	if !d.yRegion.IsEmpty() {
		return floats(d.area.readRegion(d.yRegion))
	}
	p := d.proxy()
	if p == nil || d.index >= p.RowCount() {
		return nil
	}
	n := p.ColumnCount()
	values := make([]models.Value, n)
	for c := 0; c < n; c++ {
		values[c] = p.Data(d.index, c)
	}
	return floats(values)
}

// XValues returns the X values of two-dimensional series, or nil when no
// X region is set.
func (d *DataSet) XValues() []*float64 {
	if d.xRegion.IsEmpty() {
		return nil
	}
	return floats(d.area.readRegion(d.xRegion))
}

// Categories returns the category labels: the category region or the
// proxy's column headers. It is nil when neither provides text.
func (d *DataSet) Categories() []string {
	var values []models.Value
	if !d.categoryRegion.IsEmpty() {
		values = d.area.readRegion(d.categoryRegion)
	} else if p := d.proxy(); p != nil {
		n := p.ColumnCount()
		values = make([]models.Value, n)
		for c := 0; c < n; c++ {
			values[c] = p.HeaderData(c, proxy.Horizontal)
		}
	}
	out := make([]string, len(values))
	found := false
	for i, v := range values {
		out[i] = v.Text()
		found = found || out[i] != ""
	}
	if !found {
		return nil
	}
	return out
}

// Color returns the explicit colour or the palette colour for the index.
func (d *DataSet) Color() colorful.Color {
	if d.color != nil {
		return *d.color
	}
	if d.area == nil {
		return DefaultPalette().At(d.index)
	}
	return d.area.palette.At(d.index)
}

// HasColor reports whether an explicit colour is set.
func (d *DataSet) HasColor() bool { return d.color != nil }

// SetColor overrides the palette colour.
func (d *DataSet) SetColor(c colorful.Color) { d.color = &c }

// ResetColor returns to the palette colour.
func (d *DataSet) ResetColor() { d.color = nil }

// ChartType returns the per series override, NoChartType when unset.
// Overrides are changed through PlotArea.SetDataSetChartType.
func (d *DataSet) ChartType() models.ChartType { return d.chartType }

// Subtype returns the per series subtype override.
func (d *DataSet) Subtype() models.ChartSubtype { return d.subtype }

// LabelRegion returns the explicit label region, if any.
func (d *DataSet) LabelRegion() cellregion.Region { return d.labelRegion }

// SetLabelRegion reads the series name from g instead of the proxy header.
func (d *DataSet) SetLabelRegion(g cellregion.Region) { d.labelRegion = g }

// YDataRegion returns the explicit Y values region, if any.
func (d *DataSet) YDataRegion() cellregion.Region { return d.yRegion }

// SetYDataRegion reads the values from g instead of the proxy row.
func (d *DataSet) SetYDataRegion(g cellregion.Region) { d.yRegion = g }

// XDataRegion returns the X values region, if any.
func (d *DataSet) XDataRegion() cellregion.Region { return d.xRegion }

// SetXDataRegion sets the X values region.
func (d *DataSet) SetXDataRegion(g cellregion.Region) { d.xRegion = g }

// CategoryRegion returns the explicit category region, if any.
func (d *DataSet) CategoryRegion() cellregion.Region { return d.categoryRegion }

// SetCategoryRegion reads the categories from g instead of the proxy header.
func (d *DataSet) SetCategoryRegion(g cellregion.Region) { d.categoryRegion = g }

func (d *DataSet) proxy() *proxy.Model {
	if d.area == nil {
		return nil
	}
	return d.area.proxy
}

func floats(values []models.Value) []*float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]*float64, len(values))
	for i, v := range values {
		if f, ok := v.Float(); ok {
			out[i] = &f
		}
	}
	return out
}
