package plot

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// PlotArea owns the data sets derived from a proxy model together with the
// axes and the chart type settings.
type PlotArea struct {
	proxy   *proxy.Model
	palette Palette
	policy  Policy

	chartType models.ChartType
	subtype   models.ChartSubtype
	threeD    bool

	// GapBetweenBars is the gap between bar groups in percent of a bar width.
	GapBetweenBars int
	// GapBetweenSets is the gap between bars of one group, in percent.
	GapBetweenSets int

	axes     []*Axis
	dataSets []*DataSet
	selected int

	conn    func()
	changed table.Signal
}

// NewPlotArea returns a bar chart plot area over p with an X and a Y axis.
// Data sets follow the proxy rows from now on.
func NewPlotArea(p *proxy.Model) *PlotArea {
	a := &PlotArea{
		proxy:          p,
		palette:        DefaultPalette(),
		policy:         DefaultPolicy(),
		chartType:      models.BarChartType,
		subtype:        models.NormalChartSubtype,
		GapBetweenBars: 100,
		selected:       -1,
		axes: []*Axis{
			NewAxis(XAxisDimension, "primary-x"),
			NewAxis(YAxisDimension, "primary-y"),
		},
	}
	if p != nil {
		a.conn = p.Changed().Connect(a.onProxyChange)
	}
	a.rebuild()
	return a
}

// Close detaches the plot area from the proxy.
func (a *PlotArea) Close() {
	if a.conn != nil {
		a.conn()
		a.conn = nil
	}
}

// Changed emits Reset after the data sets were rebuilt and DataChanged
// when values changed.
func (a *PlotArea) Changed() *table.Signal { return &a.changed }

// Proxy returns the proxy model the data sets read from.
func (a *PlotArea) Proxy() *proxy.Model { return a.proxy }

// Palette returns the automatic series colours.
func (a *PlotArea) Palette() Palette { return a.palette }

// SetPalette replaces the automatic series colours. An empty palette
// restores the default.
func (a *PlotArea) SetPalette(p Palette) {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	a.palette = p
}

// Policy returns the combinability policy.
func (a *PlotArea) Policy() Policy { return a.policy }

// SetPolicy replaces the combinability policy. Existing overrides that the
// new policy rejects are cleared.
func (a *PlotArea) SetPolicy(p Policy) {
	a.policy = p
	a.dropIncompatibleOverrides()
}

// ChartType returns the chart type of the plot area.
func (a *PlotArea) ChartType() models.ChartType { return a.chartType }

// SetChartType changes the chart type. The subtype falls back to Normal or
// None depending on whether the type has subtypes, and overrides that can
// no longer be combined are cleared.
func (a *PlotArea) SetChartType(t models.ChartType) {
	if t < 0 || t >= models.LastChartType {
		return
	}
	a.chartType = t
	switch {
	case !t.HasSubtypes():
		a.subtype = models.NoChartSubtype
	case a.subtype == models.NoChartSubtype:
		a.subtype = models.NormalChartSubtype
	}
	a.dropIncompatibleOverrides()
	a.changed.Emit(table.Change{Kind: table.Reset})
}

// Subtype returns the chart subtype.
func (a *PlotArea) Subtype() models.ChartSubtype { return a.subtype }

// SetSubtype changes the subtype. Types without subtypes keep None.
func (a *PlotArea) SetSubtype(s models.ChartSubtype) {
	if !a.chartType.HasSubtypes() {
		s = models.NoChartSubtype
	} else if s == models.NoChartSubtype {
		s = models.NormalChartSubtype
	}
	a.subtype = s
	a.changed.Emit(table.Change{Kind: table.Reset})
}

// ThreeD reports whether the chart is drawn in 3D.
func (a *PlotArea) ThreeD() bool { return a.threeD }

// SetThreeD switches 3D drawing.
func (a *PlotArea) SetThreeD(b bool) {
	a.threeD = b
	a.changed.Emit(table.Change{Kind: table.Reset})
}

// DataSets returns the current data sets in series order.
func (a *PlotArea) DataSets() []*DataSet {
	out := make([]*DataSet, len(a.dataSets))
	copy(out, a.dataSets)
	return out
}

// DataSet returns the data set at index i, or nil.
func (a *PlotArea) DataSet(i int) *DataSet {
	if i < 0 || i >= len(a.dataSets) {
		return nil
	}
	return a.dataSets[i]
}

// SetDataSetChartType sets the chart type override of ds. Passing
// NoChartType clears it.
func (a *PlotArea) SetDataSetChartType(ds *DataSet, t models.ChartType) error {
	if !a.owns(ds) {
		return ErrUnknownDataSet
	}
	if !a.policy.Combinable(a.chartType, t) {
		log.Warn().Str("plot", a.chartType.String()).Str("override", t.String()).Int("series", ds.index).Msg("chart type override rejected")
		return fmt.Errorf("%w: %s in a %s chart", ErrNotCombinable, t, a.chartType)
	}
	ds.chartType = t
	if t == models.NoChartType || !t.HasSubtypes() {
		ds.subtype = models.NoChartSubtype
	}
	return nil
}

// SetDataSetSubtype sets the subtype override of ds. It only applies to
// data sets whose effective type has subtypes.
func (a *PlotArea) SetDataSetSubtype(ds *DataSet, s models.ChartSubtype) error {
	if !a.owns(ds) {
		return ErrUnknownDataSet
	}
	if !a.EffectiveChartType(ds).HasSubtypes() {
		s = models.NoChartSubtype
	}
	ds.subtype = s
	return nil
}

// EffectiveChartType returns the override of ds or the plot area's type.
func (a *PlotArea) EffectiveChartType(ds *DataSet) models.ChartType {
	if ds != nil && ds.chartType != models.NoChartType {
		return ds.chartType
	}
	return a.chartType
}

// EffectiveSubtype returns the subtype override of ds or the plot area's.
func (a *PlotArea) EffectiveSubtype(ds *DataSet) models.ChartSubtype {
	if ds != nil && ds.chartType != models.NoChartType {
		if ds.subtype != models.NoChartSubtype {
			return ds.subtype
		}
		if ds.chartType.HasSubtypes() {
			return models.NormalChartSubtype
		}
		return models.NoChartSubtype
	}
	return a.subtype
}

// SelectedIndex returns the selected data set, or -1.
func (a *PlotArea) SelectedIndex() int { return a.selected }

// Select marks data set i as selected. Out of range indices clear the
// selection and return false.
func (a *PlotArea) Select(i int) bool {
	if i < 0 || i >= len(a.dataSets) {
		a.selected = -1
		return false
	}
	a.selected = i
	return true
}

// Axes returns the axes in creation order.
func (a *PlotArea) Axes() []*Axis {
	out := make([]*Axis, len(a.axes))
	copy(out, a.axes)
	return out
}

// AddAxis appends a new axis. An empty name is derived from the dimension.
func (a *PlotArea) AddAxis(dim AxisDimension, name string) *Axis {
	if name == "" {
		name = fmt.Sprintf("%s-%d", dim, len(a.axesOf(dim))+1)
	}
	ax := NewAxis(dim, name)
	a.axes = append(a.axes, ax)
	return ax
}

// RemoveAxis removes ax and reports whether it was present.
func (a *PlotArea) RemoveAxis(ax *Axis) bool {
	for i, cur := range a.axes {
		if cur == ax {
			a.axes = append(a.axes[:i], a.axes[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAxes removes every axis.
func (a *PlotArea) ClearAxes() { a.axes = nil }

// XAxis returns the first X axis, or nil.
func (a *PlotArea) XAxis() *Axis { return a.nthAxis(XAxisDimension, 0) }

// YAxis returns the first Y axis, or nil.
func (a *PlotArea) YAxis() *Axis { return a.nthAxis(YAxisDimension, 0) }

// SecondaryYAxis returns the second Y axis, or nil.
func (a *PlotArea) SecondaryYAxis() *Axis { return a.nthAxis(YAxisDimension, 1) }

func (a *PlotArea) axesOf(dim AxisDimension) []*Axis {
	var out []*Axis
	for _, ax := range a.axes {
		if ax.Dimension == dim {
			out = append(out, ax)
		}
	}
	return out
}

func (a *PlotArea) nthAxis(dim AxisDimension, n int) *Axis {
	axes := a.axesOf(dim)
	if n >= len(axes) {
		return nil
	}
	return axes[n]
}

func (a *PlotArea) owns(ds *DataSet) bool {
	return ds != nil && ds.area == a && ds.index < len(a.dataSets) && a.dataSets[ds.index] == ds
}

func (a *PlotArea) dropIncompatibleOverrides() {
	for _, ds := range a.dataSets {
		if !a.policy.Combinable(a.chartType, ds.chartType) {
			log.Debug().Int("series", ds.index).Str("override", ds.chartType.String()).Msg("chart type override cleared")
			ds.chartType = models.NoChartType
			ds.subtype = models.NoChartSubtype
		}
	}
}

// rebuild replaces the data sets with fresh ones, one per proxy row. The
// old data sets are detached together with their overrides, and the
// selection is cleared.
func (a *PlotArea) rebuild() {
	n := 0
	if a.proxy != nil {
		n = a.proxy.RowCount()
	}
	for _, ds := range a.dataSets {
		ds.area = nil
	}
	a.dataSets = make([]*DataSet, n)
	for i := range a.dataSets {
		a.dataSets[i] = newDataSet(a, i)
	}
	a.selected = -1
}

func (a *PlotArea) onProxyChange(c table.Change) {
	if c.IsStructural() {
		a.rebuild()
		a.changed.Emit(table.Change{Kind: table.Reset})
		return
	}
	a.changed.Emit(c)
}

// readRegion reads the cells of g through the proxy's table source. An
// unresolved region reads as nothing.
func (a *PlotArea) readRegion(g cellregion.Region) []models.Value {
	if a == nil || a.proxy == nil {
		return nil
	}
	src := a.proxy.Source()
	if err := g.Resolve(src); err != nil {
		log.Debug().Err(err).Str("region", g.String()).Msg("data region unresolved")
		return nil
	}
	cells := g.Cells()
	values := make([]models.Value, len(cells))
	for i, c := range cells {
		values[i] = src.Get(c.Table).Model().Cell(c.StartRow, c.StartCol)
	}
	return values
}
