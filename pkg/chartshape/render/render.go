// Package render paints chart shapes as SVG or PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/chartshape-go/pkg/chartshape"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

// ErrNoData is returned for shapes without a plottable series.
var ErrNoData = errors.New("chart has no plottable data")

// Format is an image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat reads "svg" or "png".
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case SVG, PNG:
		return f, true
	}
	return PNG, false
}

// Options controls image output.
type Options struct {
	Format Format
	// PixelsPerCm converts the shape size to an image size.
	PixelsPerCm float64
	// FontSize is the axis and legend font size in points.
	FontSize float64
}

// DefaultOptions renders PNG at 96 DPI.
func DefaultOptions() Options {
	return Options{Format: PNG, PixelsPerCm: 96 / 2.54, FontSize: 9}
}

// Painter draws one shape. It implements chartshape.Paintable.
type Painter struct {
	shape *chartshape.Shape
	opts  Options
}

var _ chartshape.Paintable = (*Painter)(nil)

// New returns a painter for s.
func New(s *chartshape.Shape, opts Options) *Painter {
	if opts.PixelsPerCm <= 0 {
		opts.PixelsPerCm = DefaultOptions().PixelsPerCm
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}
	return &Painter{shape: s, opts: opts}
}

// Render paints s to w.
func Render(s *chartshape.Shape, w io.Writer, opts Options) error {
	return New(s, opts).Paint(w)
}

// series is the drawable content of one data set.
type series struct {
	name       string
	color      drawing.Color
	chartType  models.ChartType
	values     []*float64
	xValues    []*float64
	categories []string
}

// Paint writes the image. Hidden shapes produce no output.
func (p *Painter) Paint(w io.Writer) error {
	s := p.shape
	if !s.IsVisible() {
		return nil
	}
	data := p.collect()
	if len(data) == 0 {
		return ErrNoData
	}

	provider := chart.PNG
	if p.opts.Format == SVG {
		provider = chart.SVG
	}
	width, height := s.Size()
	pw, ph := int(width*p.opts.PixelsPerCm), int(height*p.opts.PixelsPerCm)

	var r interface {
		Render(chart.RendererProvider, io.Writer) error
	}
	switch t := s.ChartType(); {
	case t == models.CircleChartType || t == models.RingChartType:
		pie := p.pie(data[0], pw, ph)
		if len(pie.Values) == 0 {
			return ErrNoData
		}
		r = pie
	case t == models.BarChartType && onlyType(data, t):
		switch s.ChartSubtype() {
		case models.StackedChartSubtype, models.PercentChartSubtype:
			r = p.stackedBars(data, pw, ph)
		default:
			r = p.bars(data, pw, ph)
		}
	default:
		g, err := p.continuous(data, pw, ph)
		if err != nil {
			return err
		}
		r = g
	}
	if err := r.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", s.ChartType(), err)
	}
	return nil
}

func (p *Painter) collect() []series {
	area := p.shape.PlotArea()
	var out []series
	for _, ds := range area.DataSets() {
		sr := series{
			name:       ds.Label(),
			color:      toDrawing(ds.Color()),
			chartType:  area.EffectiveChartType(ds),
			values:     ds.Values(),
			xValues:    ds.XValues(),
			categories: ds.Categories(),
		}
		if countValues(sr.values) == 0 {
			log.Debug().Int("series", ds.Index()).Msg("series without values not drawn")
			continue
		}
		out = append(out, sr)
	}
	return out
}

func (p *Painter) title() string {
	if t := p.shape.Title; t.Visible {
		return t.Text
	}
	return ""
}

func (p *Painter) titleStyle() chart.Style {
	return chart.Style{FontSize: p.shape.Title.Font.Size, FontColor: toDrawing(p.shape.Title.Color)}
}

func (p *Painter) pie(s series, w, h int) *chart.PieChart {
	var values []chart.Value
	for i, v := range s.values {
		if v == nil || *v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: label(s.categories, i),
			Value: *v,
			Style: chart.Style{FillColor: sliceColor(p, i)},
		})
	}
	return &chart.PieChart{
		Title:      p.title(),
		TitleStyle: p.titleStyle(),
		Width:      w,
		Height:     h,
		SliceStyle: chart.Style{FontSize: p.opts.FontSize},
		Values:     values,
	}
}

// bars draws grouped bars: every category holds one bar per series.
func (p *Painter) bars(data []series, w, h int) *chart.BarChart {
	n := maxLen(data)
	var bars []chart.Value
	for i := 0; i < n; i++ {
		for j, s := range data {
			v := 0.0
			if i < len(s.values) && s.values[i] != nil {
				v = *s.values[i]
			}
			name := ""
			if j == 0 {
				name = label(s.categories, i)
			}
			bars = append(bars, chart.Value{
				Label: name,
				Value: v,
				Style: chart.Style{FillColor: s.color, StrokeColor: s.color},
			})
		}
	}
	slot := float64(w) / float64(len(bars)+1)
	return &chart.BarChart{
		Title:      p.title(),
		TitleStyle: p.titleStyle(),
		Width:      w,
		Height:     h,
		BarWidth:   max(1, int(slot*0.7)),
		BarSpacing: max(1, int(slot*0.3)),
		XAxis:      chart.Style{FontSize: p.opts.FontSize},
		YAxis:      p.yAxis(data, false),
		Bars:       bars,
	}
}

// stackedBars draws one stacked bar per category. Percent charts scale
// every bar to 100.
func (p *Painter) stackedBars(data []series, w, h int) *chart.StackedBarChart {
	percent := p.shape.ChartSubtype() == models.PercentChartSubtype
	n := maxLen(data)
	bars := make([]chart.StackedBar, n)
	for i := range bars {
		total := 0.0
		for _, s := range data {
			if i < len(s.values) && s.values[i] != nil {
				total += math.Abs(*s.values[i])
			}
		}
		bars[i].Name = label(data[0].categories, i)
		for _, s := range data {
			v := 0.0
			if i < len(s.values) && s.values[i] != nil {
				v = math.Abs(*s.values[i])
			}
			if percent && total > 0 {
				v = v / total * 100
			}
			bars[i].Values = append(bars[i].Values, chart.Value{
				Label: s.name,
				Value: v,
				Style: chart.Style{FillColor: s.color, StrokeColor: s.color},
			})
		}
	}
	return &chart.StackedBarChart{
		Title:      p.title(),
		TitleStyle: p.titleStyle(),
		Width:      w,
		Height:     h,
		XAxis:      chart.Style{FontSize: p.opts.FontSize},
		YAxis:      chart.Style{FontSize: p.opts.FontSize},
		Bars:       bars,
	}
}

// continuous draws line, area, scatter and the remaining chart types as
// X/Y series. Categories become X axis ticks.
func (p *Painter) continuous(data []series, w, h int) (*chart.Chart, error) {
	stacked := p.shape.ChartSubtype() == models.StackedChartSubtype || p.shape.ChartSubtype() == models.PercentChartSubtype
	if stacked {
		data = accumulate(data, p.shape.ChartSubtype() == models.PercentChartSubtype)
	}

	var out []chart.Series
	var ticks []chart.Tick
	for _, s := range data {
		var xs, ys []float64
		for i, v := range s.values {
			if v == nil {
				continue
			}
			x := float64(i)
			if i < len(s.xValues) {
				if s.xValues[i] == nil {
					continue
				}
				x = *s.xValues[i]
			}
			xs = append(xs, x)
			ys = append(ys, *v)
		}
		if len(xs) < 2 {
			log.Debug().Str("series", s.name).Msg("series needs two points")
			continue
		}
		style := chart.Style{StrokeColor: s.color, StrokeWidth: 2}
		switch s.chartType {
		case models.AreaChartType:
			style.FillColor = s.color.WithAlpha(96)
		case models.ScatterChartType, models.BubbleChartType:
			style.StrokeWidth = chart.Disabled
			style.DotWidth = 4
			style.DotColor = s.color
		}
		out = append(out, chart.ContinuousSeries{Name: s.name, Style: style, XValues: xs, YValues: ys})
		if ticks == nil && s.xValues == nil && len(s.categories) > 0 {
			for i := range s.values {
				ticks = append(ticks, chart.Tick{Value: float64(i), Label: label(s.categories, i)})
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}

	g := &chart.Chart{
		Title:      p.title(),
		TitleStyle: p.titleStyle(),
		Width:      w,
		Height:     h,
		XAxis:      chart.XAxis{Style: chart.Style{FontSize: p.opts.FontSize}, Ticks: ticks},
		YAxis:      p.yAxis(data, true),
		Series:     out,
	}
	if ax := p.shape.PlotArea().XAxis(); ax != nil {
		g.XAxis.Name = ax.Title
		g.XAxis.Style.Hidden = !ax.Visible
	}
	if p.shape.Legend().Visible() && len(out) > 1 {
		g.Elements = []chart.Renderable{chart.Legend(g, chart.Style{FontSize: p.opts.FontSize})}
	}
	return g, nil
}

// yAxis returns the Y axis settings. Fixed bounds of the plot area's Y
// axis win; otherwise the data range is padded by five percent.
func (p *Painter) yAxis(data []series, pad bool) chart.YAxis {
	y := chart.YAxis{Style: chart.Style{FontSize: p.opts.FontSize}}
	ax := p.shape.PlotArea().YAxis()
	if ax != nil {
		y.Name = ax.Title
		y.Style.Hidden = !ax.Visible
		if ax.ShowGrid {
			y.GridMajorStyle = chart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1}
		}
	}
	lo, hi := valueRange(data)
	if ax != nil && !ax.AutoMin {
		lo = ax.Min
	}
	if ax != nil && !ax.AutoMax {
		hi = ax.Max
	}
	if pad || lo == hi {
		d := (hi - lo) * 0.05
		if d == 0 {
			d = 1
		}
		if ax == nil || ax.AutoMin {
			lo -= d
		}
		if ax == nil || ax.AutoMax {
			hi += d
		}
	}
	y.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	return y
}

// accumulate turns values into running totals across series, scaled to
// percent of the category total when percent is set.
func accumulate(data []series, percent bool) []series {
	n := maxLen(data)
	totals := make([]float64, n)
	if percent {
		for _, s := range data {
			for i, v := range s.values {
				if v != nil {
					totals[i] += math.Abs(*v)
				}
			}
		}
	}
	sums := make([]float64, n)
	out := make([]series, len(data))
	for j, s := range data {
		s.values = make([]*float64, len(data[j].values))
		for i, v := range data[j].values {
			if v == nil {
				continue
			}
			add := *v
			if percent {
				if totals[i] == 0 {
					continue
				}
				add = math.Abs(add) / totals[i] * 100
			}
			sums[i] += add
			sum := sums[i]
			s.values[i] = &sum
		}
		out[j] = s
	}
	return out
}

func valueRange(data []series) (lo, hi float64) {
	first := true
	for _, s := range data {
		for _, v := range s.values {
			if v == nil {
				continue
			}
			if first {
				lo, hi = *v, *v
				first = false
				continue
			}
			lo, hi = math.Min(lo, *v), math.Max(hi, *v)
		}
	}
	if lo > 0 {
		lo = 0
	}
	return lo, hi
}

func onlyType(data []series, t models.ChartType) bool {
	for _, s := range data {
		if s.chartType != t {
			return false
		}
	}
	return true
}

func maxLen(data []series) int {
	n := 0
	for _, s := range data {
		n = max(n, len(s.values))
	}
	return n
}

func countValues(values []*float64) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}

func label(categories []string, i int) string {
	if i < len(categories) {
		return categories[i]
	}
	return fmt.Sprint(i + 1)
}

func sliceColor(p *Painter, i int) drawing.Color {
	return toDrawing(p.shape.PlotArea().Palette().At(i))
}

func toDrawing(c colorful.Color) drawing.Color {
	r, g, b := c.Clamped().RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}
