package chartshape

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/odf"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/plot"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
)

// plotAreaState is the persisted part of the plot area and proxy settings.
type plotAreaState struct {
	Region         string
	RowLabel       bool
	ColLabel       bool
	Direction      proxy.Direction
	Subtype        models.ChartSubtype
	ThreeD         bool
	GapWidth       int
	GapBetweenSets int
}

// seriesState is the persisted part of a data set.
type seriesState struct {
	Class      models.ChartType
	Subtype    models.ChartSubtype
	Values     string
	Label      string
	Categories string
	X          string
	Color      colorful.Color
	HasColor   bool
	ShowValues bool
	ShowLabels bool
	PieOffset  int
}

var shapeFields = []odf.Field[Shape]{
	odf.Length("svg:width", "cm", func(s *Shape) *float64 { return &s.w }),
	odf.Length("svg:height", "cm", func(s *Shape) *float64 { return &s.h }),
	{
		Attr: "ext:id",
		Get:  func(s *Shape) (string, bool) { return s.id.String(), true },
		Set: func(s *Shape, v string) error {
			id, err := uuid.Parse(v)
			if err != nil {
				return err
			}
			s.id = id
			return nil
		},
	},
	odf.String("ext:name", func(s *Shape) *string { return &s.Name }),
}

var labelFields = append([]odf.Field[Label]{
	odf.Length("svg:x", "cm", func(l *Label) *float64 { return &l.X }),
	odf.Length("svg:y", "cm", func(l *Label) *float64 { return &l.Y }),
	odf.Color("fo:color", func(l *Label) *colorful.Color { return &l.Color }),
}, fontFields("fo:", func(l *Label) *plot.Font { return &l.Font })...)

var legendFields = append(append([]odf.Field[plot.Legend]{
	odf.Enum("chart:legend-position", func(l *plot.Legend) *plot.LegendPosition { return &l.Position },
		plot.LegendPosition.String, plot.ParseLegendPosition),
	odf.Enum("chart:legend-align", func(l *plot.Legend) *plot.LegendAlignment { return &l.Alignment },
		plot.LegendAlignment.String, parseAlignment),
	odf.Enum("style:legend-expansion", func(l *plot.Legend) *plot.LegendExpansion { return &l.Expansion },
		plot.LegendExpansion.String, parseExpansion),
	odf.String("ext:title", func(l *plot.Legend) *string { return &l.Title }),
	odf.Bool("ext:show-frame", func(l *plot.Legend) *bool { return &l.ShowFrame }),
	odf.Color("ext:title-color", func(l *plot.Legend) *colorful.Color { return &l.TitleColor }),
	odf.Color("fo:color", func(l *plot.Legend) *colorful.Color { return &l.TextColor }),
}, fontFields("fo:", func(l *plot.Legend) *plot.Font { return &l.Font })...),
	fontFields("ext:title-", func(l *plot.Legend) *plot.Font { return &l.TitleFont })...)

var axisFields = []odf.Field[plot.Axis]{
	odf.Enum("chart:dimension", func(a *plot.Axis) *plot.AxisDimension { return &a.Dimension },
		plot.AxisDimension.String, plot.ParseAxisDimension),
	odf.String("chart:name", func(a *plot.Axis) *string { return &a.Name }),
	odf.Bool("ext:visible", func(a *plot.Axis) *bool { return &a.Visible }),
	odf.Bool("chart:logarithmic", func(a *plot.Axis) *bool { return &a.Logarithmic }),
	odf.Bool("ext:auto-minimum", func(a *plot.Axis) *bool { return &a.AutoMin }),
	odf.Bool("ext:auto-maximum", func(a *plot.Axis) *bool { return &a.AutoMax }),
	odf.Bool("ext:auto-interval", func(a *plot.Axis) *bool { return &a.AutoStep }),
	odf.Float("chart:minimum", func(a *plot.Axis) *float64 { return &a.Min }),
	odf.Float("chart:maximum", func(a *plot.Axis) *float64 { return &a.Max }),
	odf.Float("chart:interval-major", func(a *plot.Axis) *float64 { return &a.Step }),
}

var plotAreaFields = []odf.Field[plotAreaState]{
	odf.String("table:cell-range-address", func(p *plotAreaState) *string { return &p.Region }),
	{
		Attr: "chart:data-source-has-labels",
		Get: func(p *plotAreaState) (string, bool) {
			switch {
			case p.RowLabel && p.ColLabel:
				return "both", true
			case p.RowLabel:
				return "row", true
			case p.ColLabel:
				return "column", true
			}
			return "none", true
		},
		Set: func(p *plotAreaState, v string) error {
			switch v {
			case "none":
				p.RowLabel, p.ColLabel = false, false
			case "row":
				p.RowLabel, p.ColLabel = true, false
			case "column":
				p.RowLabel, p.ColLabel = false, true
			case "both":
				p.RowLabel, p.ColLabel = true, true
			default:
				return fmt.Errorf("unknown value %q", v)
			}
			return nil
		},
	},
	odf.Enum("chart:series-source", func(p *plotAreaState) *proxy.Direction { return &p.Direction },
		proxy.Direction.String, parseDirection),
	subtypeFlag("chart:stacked", models.StackedChartSubtype),
	subtypeFlag("chart:percentage", models.PercentChartSubtype),
	odf.Bool("chart:three-dimensional", func(p *plotAreaState) *bool { return &p.ThreeD }),
	odf.Int("chart:gap-width", func(p *plotAreaState) *int { return &p.GapWidth }),
	odf.Int("ext:gap-between-sets", func(p *plotAreaState) *int { return &p.GapBetweenSets }),
}

var seriesFields = []odf.Field[seriesState]{
	odf.Enum("chart:class", func(s *seriesState) *models.ChartType { return &s.Class },
		models.ChartType.Class, models.ChartTypeFromClass),
	odf.Enum("ext:subtype", func(s *seriesState) *models.ChartSubtype { return &s.Subtype },
		formatSubtype, parseSubtype),
	odf.String("chart:values-cell-range-address", func(s *seriesState) *string { return &s.Values }),
	odf.String("chart:label-cell-address", func(s *seriesState) *string { return &s.Label }),
	odf.String("ext:categories-cell-range-address", func(s *seriesState) *string { return &s.Categories }),
	{
		Attr: "ext:color",
		Get:  func(s *seriesState) (string, bool) { return s.Color.Hex(), s.HasColor },
		Set: func(s *seriesState, v string) error {
			c, err := colorful.Hex(v)
			if err != nil {
				return err
			}
			s.Color, s.HasColor = c, true
			return nil
		},
	},
	odf.Bool("ext:show-values", func(s *seriesState) *bool { return &s.ShowValues }),
	odf.Bool("ext:show-labels", func(s *seriesState) *bool { return &s.ShowLabels }),
	odf.Int("chart:pie-offset", func(s *seriesState) *int { return &s.PieOffset }),
}

func fontFields[T any](prefix string, ptr func(*T) *plot.Font) []odf.Field[T] {
	return []odf.Field[T]{
		odf.String(prefix+"font-family", func(v *T) *string { return &ptr(v).Family }),
		odf.Length(prefix+"font-size", "pt", func(v *T) *float64 { return &ptr(v).Size }),
		odf.Enum(prefix+"font-weight", func(v *T) *bool { return &ptr(v).Bold }, formatWeight, parseWeight),
		odf.Enum(prefix+"font-style", func(v *T) *bool { return &ptr(v).Italic }, formatStyle, parseStyle),
	}
}

// subtypeFlag binds a boolean attribute that selects subtype when true.
func subtypeFlag(attr string, subtype models.ChartSubtype) odf.Field[plotAreaState] {
	return odf.Field[plotAreaState]{
		Attr: attr,
		Get: func(p *plotAreaState) (string, bool) {
			return strconv.FormatBool(p.Subtype == subtype), true
		},
		Set: func(p *plotAreaState, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			if b {
				p.Subtype = subtype
			}
			return nil
		},
	}
}

func formatWeight(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}

func parseWeight(s string) (bool, bool) {
	switch s {
	case "bold", "700", "800", "900":
		return true, true
	case "normal", "400":
		return false, true
	}
	return false, false
}

func formatStyle(italic bool) string {
	if italic {
		return "italic"
	}
	return "normal"
}

func parseStyle(s string) (bool, bool) {
	switch s {
	case "italic", "oblique":
		return true, true
	case "normal":
		return false, true
	}
	return false, false
}

func parseAlignment(s string) (plot.LegendAlignment, bool) {
	a := plot.ParseLegendAlignment(s)
	return a, a.String() == s
}

func parseExpansion(s string) (plot.LegendExpansion, bool) {
	e := plot.ParseLegendExpansion(s)
	return e, e.String() == s
}

func parseDirection(s string) (proxy.Direction, bool) {
	return proxy.ParseDirection(s), true
}

func formatSubtype(s models.ChartSubtype) string {
	if s == models.NoChartSubtype {
		return ""
	}
	return s.String()
}

func parseSubtype(s string) (models.ChartSubtype, bool) {
	st := models.ChartSubtypeFromString(s)
	return st, st != models.NoChartSubtype
}

// SaveXML writes the shape as an OpenDocument chart content document.
func (s *Shape) SaveXML(w io.Writer) error {
	xw := odf.NewWriter(w, false)
	xw.Header()
	xw.Start("office:document-content", odf.NamespaceAttrs()...)
	xw.Start("office:body")
	xw.Start("office:chart")
	s.writeChart(xw)
	xw.End("office:chart")
	xw.End("office:body")
	xw.End("office:document-content")
	return xw.Flush()
}

func (s *Shape) writeChart(xw *odf.Writer) {
	attrs := append([]odf.Attr{{Name: "chart:class", Value: s.ChartType().Class()}}, odf.WriteAttrs(s, shapeFields)...)
	xw.Start("chart:chart", attrs...)
	writeLabel(xw, "chart:title", s.Title)
	writeLabel(xw, "chart:subtitle", s.Subtitle)
	writeLabel(xw, "chart:footer", s.Footer)
	if s.legend.Visible() {
		xw.Leaf("chart:legend", odf.WriteAttrs(s.legend, legendFields)...)
	}
	s.writePlotArea(xw)
	if s.internal != nil {
		odf.EncodeTable(xw, s.internal.Name(), s.internal.Model())
	}
	xw.End("chart:chart")
}

func writeLabel(xw *odf.Writer, name string, l *Label) {
	if !l.Visible {
		return
	}
	xw.Start(name, odf.WriteAttrs(l, labelFields)...)
	xw.Paragraphs(l.Text)
	xw.End(name)
}

func (s *Shape) writePlotArea(xw *odf.Writer) {
	st := s.plotAreaState()
	xw.Start("chart:plot-area", odf.WriteAttrs(&st, plotAreaFields)...)
	for _, ax := range s.plotArea.Axes() {
		xw.Start("chart:axis", odf.WriteAttrs(ax, axisFields)...)
		if ax.Title != "" {
			xw.Start("chart:title")
			xw.Paragraphs(ax.Title)
			xw.End("chart:title")
		}
		if ax.ShowGrid {
			xw.Leaf("chart:grid", odf.Attr{Name: "chart:class", Value: "major"})
		}
		xw.End("chart:axis")
	}
	for _, ds := range s.plotArea.DataSets() {
		ss := seriesStateOf(ds)
		xw.Start("chart:series", odf.WriteAttrs(&ss, seriesFields)...)
		if ss.X != "" {
			xw.Leaf("chart:domain", odf.Attr{Name: "table:cell-range-address", Value: ss.X})
		}
		xw.End("chart:series")
	}
	xw.End("chart:plot-area")
}

func (s *Shape) plotAreaState() plotAreaState {
	return plotAreaState{
		Region:         s.proxy.Region().String(),
		RowLabel:       s.proxy.FirstRowIsLabel(),
		ColLabel:       s.proxy.FirstColumnIsLabel(),
		Direction:      s.proxy.DataDirection(),
		Subtype:        s.plotArea.Subtype(),
		ThreeD:         s.plotArea.ThreeD(),
		GapWidth:       s.plotArea.GapBetweenBars,
		GapBetweenSets: s.plotArea.GapBetweenSets,
	}
}

func seriesStateOf(ds *plot.DataSet) seriesState {
	return seriesState{
		Class:      ds.ChartType(),
		Subtype:    ds.Subtype(),
		Values:     ds.YDataRegion().String(),
		Label:      ds.LabelRegion().String(),
		Categories: ds.CategoryRegion().String(),
		X:          ds.XDataRegion().String(),
		Color:      ds.Color(),
		HasColor:   ds.HasColor(),
		ShowValues: ds.ShowValues,
		ShowLabels: ds.ShowLabels,
		PieOffset:  ds.PieExplodeFactor,
	}
}

// LoadXML restores the shape from a document holding a chart:chart
// element. A missing or unknown chart class fails with
// ErrUnsupportedChartClass. Invalid attributes and data ranges are logged
// or reported and otherwise skipped.
func (s *Shape) LoadXML(r io.Reader) error {
	doc, err := odf.Decode(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	el := doc.Find("chart:chart")
	if el == nil {
		return ErrNoChart
	}
	return s.loadChart(el)
}

func (s *Shape) loadChart(el *odf.Element) error {
	class, ok := el.Attr("chart:class")
	if !ok {
		return fmt.Errorf("%w: chart:class is missing", ErrUnsupportedChartClass)
	}
	chartType, ok := models.ChartTypeFromClass(class)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedChartClass, class)
	}
	if s.source.SheetAccessModel() != nil {
		s.internalOnly = false
	}
	warnAttrs(el, odf.ReadAttrs(el, s, shapeFields))
	// Series overrides are checked against the plot area type.
	s.plotArea.SetChartType(chartType)

	if tel := el.FirstChild("table:table"); tel != nil {
		grid, name, err := odf.DecodeTable(tel)
		if err != nil {
			return fmt.Errorf("load data table: %w", err)
		}
		if _, err := s.SetInternalTable(name, grid); err != nil {
			return err
		}
	}

	if pel := el.FirstChild("chart:plot-area"); pel != nil {
		s.loadPlotArea(pel)
	}

	s.loadLabel(s.Title, el.FirstChild("chart:title"))
	s.loadLabel(s.Subtitle, el.FirstChild("chart:subtitle"))
	s.loadLabel(s.Footer, el.FirstChild("chart:footer"))

	if lel := el.FirstChild("chart:legend"); lel != nil {
		if s.legend.Position == plot.LegendNone {
			s.legend.Position = plot.LegendEnd
		}
		warnAttrs(lel, odf.ReadAttrs(lel, s.legend, legendFields))
	} else {
		s.legend.Position = plot.LegendNone
	}

	s.SetChartType(chartType)
	return nil
}

func (s *Shape) loadLabel(l *Label, el *odf.Element) {
	s.setLabelVisible(l, el != nil)
	if el == nil {
		return
	}
	l.Text = el.Paragraphs()
	warnAttrs(el, odf.ReadAttrs(el, l, labelFields))
}

func (s *Shape) loadPlotArea(el *odf.Element) {
	st := s.plotAreaState()
	st.Region = ""
	st.Subtype = models.NormalChartSubtype
	warnAttrs(el, odf.ReadAttrs(el, &st, plotAreaFields))

	s.proxy.SetFirstRowIsLabel(st.RowLabel)
	s.proxy.SetFirstColumnIsLabel(st.ColLabel)
	s.proxy.SetDataDirection(st.Direction)
	s.plotArea.SetSubtype(st.Subtype)
	s.plotArea.SetThreeD(st.ThreeD)
	s.plotArea.GapBetweenBars = st.GapWidth
	s.plotArea.GapBetweenSets = st.GapBetweenSets

	// A chart showing its own table follows the whole table.
	if st.Region != "" && (!s.internalOnly || s.internal == nil) {
		if g, ok := s.parseRegion(st.Region); ok {
			s.internalOnly = false
			s.proxy.Reset(g)
		}
	}

	if axes := el.ChildrenNamed("chart:axis"); len(axes) > 0 {
		s.plotArea.ClearAxes()
		for _, ael := range axes {
			dim, _ := plot.ParseAxisDimension(ael.AttrOr("chart:dimension", "x"))
			ax := s.plotArea.AddAxis(dim, ael.AttrOr("chart:name", ""))
			warnAttrs(ael, odf.ReadAttrs(ael, ax, axisFields))
			ax.Title = ael.FirstChild("chart:title").Paragraphs()
			ax.ShowGrid = ael.FirstChild("chart:grid") != nil
		}
	}

	for i, sel := range el.ChildrenNamed("chart:series") {
		ds := s.plotArea.DataSet(i)
		if ds == nil {
			log.Debug().Int("series", i).Msg("series settings without data, skipped")
			continue
		}
		ss := seriesState{Class: models.NoChartType}
		warnAttrs(sel, odf.ReadAttrs(sel, &ss, seriesFields))
		ss.X = sel.FirstChild("chart:domain").AttrOr("table:cell-range-address", "")
		s.applySeries(ds, ss)
	}
}

func (s *Shape) applySeries(ds *plot.DataSet, ss seriesState) {
	if ss.Class != models.NoChartType {
		// Rejected overrides are logged by the plot area.
		if err := s.plotArea.SetDataSetChartType(ds, ss.Class); err == nil {
			_ = s.plotArea.SetDataSetSubtype(ds, ss.Subtype)
		}
	}
	if g, ok := s.parseRegion(ss.Label); ok {
		ds.SetLabelRegion(g)
	}
	if g, ok := s.parseRegion(ss.Values); ok {
		ds.SetYDataRegion(g)
	}
	if g, ok := s.parseRegion(ss.Categories); ok {
		ds.SetCategoryRegion(g)
	}
	if g, ok := s.parseRegion(ss.X); ok {
		ds.SetXDataRegion(g)
	}
	if ss.HasColor {
		ds.SetColor(ss.Color)
	}
	ds.ShowValues = ss.ShowValues
	ds.ShowLabels = ss.ShowLabels
	ds.PieExplodeFactor = ss.PieOffset
}

// parseRegion parses persisted region text. Malformed text is reported
// through the shape's interaction settings and leaves the range unset.
func (s *Shape) parseRegion(text string) (cellregion.Region, bool) {
	if text == "" {
		return cellregion.Region{}, false
	}
	g, err := cellregion.Parse(text, nil)
	if err != nil {
		s.interaction.Report(err)
		return cellregion.Region{}, false
	}
	return g, true
}

func warnAttrs(el *odf.Element, err error) {
	if err != nil {
		log.Warn().Err(err).Str("element", el.Name).Msg("invalid attributes ignored")
	}
}
