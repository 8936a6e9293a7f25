package chartshape

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/plot"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// Default shape size in centimetres.
const (
	DefaultWidth  = 8.0
	DefaultHeight = 5.0
)

// DefaultTableName is the name given to the internal data table when the
// document does not provide one.
const DefaultTableName = "local-table"

// Shape is one embeddable chart. It owns the table source its data comes
// from, the proxy over the active data range, the plot area, the legend and
// the three text labels.
type Shape struct {
	id   uuid.UUID
	Name string

	x, y    float64
	w, h    float64
	visible bool
	zIndex  int

	Title    *Label
	Subtitle *Label
	Footer   *Label
	legend   *plot.Legend

	source   *table.Source
	proxy    *proxy.Model
	plotArea *plot.PlotArea

	internal     *table.Table
	internalConn func()
	internalOnly bool

	interaction Interaction

	repainter func(*Shape)
	repaints  int
	relayouts int
	plotConn  func()
}

// NewShape returns a bar chart without data, sized 8cm by 5cm, whose labels
// are hidden and whose legend is shown.
func NewShape(opts Options) *Shape {
	s := &Shape{
		id:           uuid.New(),
		w:            DefaultWidth,
		h:            DefaultHeight,
		visible:      true,
		Title:        newLabel("Title", 12),
		Subtitle:     newLabel("Subtitle", 10),
		Footer:       newLabel("Footer", 10),
		legend:       plot.NewLegend(),
		source:       table.NewSource(),
		internalOnly: true,
		interaction:  opts.Interaction,
	}
	s.placeLabels()
	s.proxy = proxy.New(s.source)
	s.plotArea = plot.NewPlotArea(s.proxy)
	if len(opts.Palette) > 0 {
		s.plotArea.SetPalette(opts.Palette)
	}
	if opts.Policy != nil {
		s.plotArea.SetPolicy(*opts.Policy)
	}
	if opts.Sheets != nil {
		s.SetSheetAccessModel(opts.Sheets)
		s.internalOnly = false
	}
	s.plotConn = s.plotArea.Changed().Connect(func(table.Change) { s.RequestRepaint() })
	s.SetChartType(models.BarChartType)
	s.SetChartSubtype(models.NormalChartSubtype)
	return s
}

// placeLabels centres the title and subtitle at the top and the footer at
// the bottom.
func (s *Shape) placeLabels() {
	const labelWidth = 5.0
	x := (s.w - labelWidth) / 2
	s.Title.X, s.Title.Y = x, 0
	s.Subtitle.X, s.Subtitle.Y = x, 0.7
	s.Footer.X, s.Footer.Y = x, s.h-0.6
}

// ID returns the unique shape id.
func (s *Shape) ID() uuid.UUID { return s.id }

// Position returns the top left corner in centimetres.
func (s *Shape) Position() (x, y float64) { return s.x, s.y }

// SetPosition moves the shape.
func (s *Shape) SetPosition(x, y float64) {
	s.x, s.y = x, y
	s.RequestRepaint()
}

// Size returns the width and height in centimetres.
func (s *Shape) Size() (w, h float64) { return s.w, s.h }

// SetSize resizes the shape. Non-positive sizes are ignored.
func (s *Shape) SetSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.w, s.h = w, h
	s.ScheduleRelayout()
}

// IsVisible reports whether the shape is shown.
func (s *Shape) IsVisible() bool { return s.visible }

// SetVisible shows or hides the shape.
func (s *Shape) SetVisible(b bool) {
	s.visible = b
	s.RequestRepaint()
}

// ZIndex returns the stacking order.
func (s *Shape) ZIndex() int { return s.zIndex }

// SetZIndex changes the stacking order.
func (s *Shape) SetZIndex(z int) { s.zIndex = z }

// ShowTitle shows or hides the title.
func (s *Shape) ShowTitle(b bool) { s.setLabelVisible(s.Title, b) }

// ShowSubtitle shows or hides the subtitle.
func (s *Shape) ShowSubtitle(b bool) { s.setLabelVisible(s.Subtitle, b) }

// ShowFooter shows or hides the footer.
func (s *Shape) ShowFooter(b bool) { s.setLabelVisible(s.Footer, b) }

func (s *Shape) setLabelVisible(l *Label, b bool) {
	if l.Visible == b {
		return
	}
	l.Visible = b
	s.ScheduleRelayout()
}

// Legend returns the legend settings.
func (s *Shape) Legend() *plot.Legend { return s.legend }

// TableSource returns the registry resolving the shape's table names.
func (s *Shape) TableSource() *table.Source { return s.source }

// Proxy returns the proxy over the active data range.
func (s *Shape) Proxy() *proxy.Model { return s.proxy }

// PlotArea returns the plot area.
func (s *Shape) PlotArea() *plot.PlotArea { return s.plotArea }

// Interaction returns the error reporting settings of the shape.
func (s *Shape) Interaction() Interaction { return s.interaction }

// SetInteraction replaces the error reporting settings.
func (s *Shape) SetInteraction(i Interaction) { s.interaction = i }

// InternalTable returns the table the shape owns, or nil.
func (s *Shape) InternalTable() *table.Table { return s.internal }

// UsesInternalModelOnly reports whether the chart shows its internal table
// only, as opposed to ranges of an external sheet.
func (s *Shape) UsesInternalModelOnly() bool { return s.internalOnly }

// SetUsesInternalModelOnly changes the data mode.
func (s *Shape) SetUsesInternalModelOnly(b bool) { s.internalOnly = b }

// SetInternalTable replaces the internal table with model, registered under
// name or a free variant of it. While the shape uses its internal table
// only, the proxy follows the whole table.
func (s *Shape) SetInternalTable(name string, model table.Model) (*table.Table, error) {
	s.dropInternalTable()
	if name == "" {
		name = DefaultTableName
	}
	if s.source.Get(name) != nil {
		name = s.source.UniqueName(name)
	}
	t, err := s.source.Add(name, model)
	if err != nil {
		return nil, fmt.Errorf("add internal table: %w", err)
	}
	s.internal = t
	if n, ok := model.(table.Notifier); ok {
		s.internalConn = n.Changed().Connect(func(c table.Change) {
			if c.IsStructural() {
				s.followInternalTable()
			}
		})
	}
	s.followInternalTable()
	return t, nil
}

func (s *Shape) dropInternalTable() {
	if s.internalConn != nil {
		s.internalConn()
		s.internalConn = nil
	}
	if s.internal != nil {
		s.source.Remove(s.internal.Name())
		s.internal = nil
	}
}

// followInternalTable binds the proxy to the full internal table.
func (s *Shape) followInternalTable() {
	if !s.internalOnly || s.internal == nil {
		return
	}
	m := s.internal.Model()
	rows, cols := m.RowCount(), m.ColumnCount()
	if rows == 0 || cols == 0 {
		s.proxy.Reset(cellregion.Region{})
		return
	}
	region := cellregion.New(cellregion.NewRange(s.internal.Name(), 0, 0, rows-1, cols-1))
	if region.Equal(s.proxy.Region()) {
		return
	}
	s.proxy.Reset(region)
}

// UseDefaultData installs a small sample table with labelled rows and
// columns, as a freshly inserted chart shows.
func (s *Shape) UseDefaultData() error {
	grid := table.GridFromStrings([][]string{
		{"", "Column 1", "Column 2", "Column 3"},
		{"Row 1", "1", "2", "3"},
		{"Row 2", "2", "3", "4"},
		{"Row 3", "3", "4", "5"},
	})
	s.internalOnly = true
	s.proxy.SetFirstRowIsLabel(true)
	s.proxy.SetFirstColumnIsLabel(true)
	s.proxy.SetDataDirection(proxy.RowMajor)
	_, err := s.SetInternalTable(DefaultTableName, grid)
	return err
}

// SetSheetAccessModel installs the provider of external tables.
func (s *Shape) SetSheetAccessModel(sheets table.SheetAccess) {
	s.source.SetSheetAccessModel(sheets)
}

// Reset points the chart at region, given as cell region text, with the
// given label and direction settings. The chart stops following its
// internal table. Malformed text is reported and leaves the data range
// unchanged.
func (s *Shape) Reset(region string, firstRowIsLabel, firstColumnIsLabel bool, dir proxy.Direction) error {
	g, err := cellregion.Parse(region, nil)
	if err != nil {
		s.interaction.Report(err)
		return err
	}
	s.internalOnly = false
	s.proxy.SetFirstRowIsLabel(firstRowIsLabel)
	s.proxy.SetFirstColumnIsLabel(firstColumnIsLabel)
	s.proxy.SetDataDirection(dir)
	s.proxy.Reset(g)
	if !g.IsValid(s.source) {
		log.Debug().Str("region", g.String()).Msg("chart data range does not resolve")
	}
	return nil
}

// ChartType returns the plot area's chart type.
func (s *Shape) ChartType() models.ChartType { return s.plotArea.ChartType() }

// SetChartType changes the chart type.
func (s *Shape) SetChartType(t models.ChartType) {
	s.plotArea.SetChartType(t)
	s.ScheduleRelayout()
}

// ChartSubtype returns the plot area's subtype.
func (s *Shape) ChartSubtype() models.ChartSubtype { return s.plotArea.Subtype() }

// SetChartSubtype changes the subtype. The plot area's change signal
// requests the repaint.
func (s *Shape) SetChartSubtype(st models.ChartSubtype) {
	s.plotArea.SetSubtype(st)
}

// IsThreeD reports whether the chart is drawn in 3D.
func (s *Shape) IsThreeD() bool { return s.plotArea.ThreeD() }

// SetThreeD switches 3D drawing.
func (s *Shape) SetThreeD(b bool) {
	s.plotArea.SetThreeD(b)
}

// SetRepainter installs the function called on every repaint request.
func (s *Shape) SetRepainter(fn func(*Shape)) { s.repainter = fn }

// RequestRepaint asks the host to draw the shape again.
func (s *Shape) RequestRepaint() {
	s.repaints++
	if s.repainter != nil {
		s.repainter(s)
	}
}

// ScheduleRelayout marks the label and legend layout as stale and
// requests a repaint.
func (s *Shape) ScheduleRelayout() {
	s.relayouts++
	s.RequestRepaint()
}

// Repaints returns the number of repaint requests so far.
func (s *Shape) Repaints() int { return s.repaints }

// Relayouts returns the number of relayouts scheduled so far.
func (s *Shape) Relayouts() int { return s.relayouts }

// Close detaches the shape from its tables and releases them.
func (s *Shape) Close() {
	if s.plotConn != nil {
		s.plotConn()
		s.plotConn = nil
	}
	s.plotArea.Close()
	s.proxy.Close()
	s.dropInternalTable()
	s.source.Clear()
}
