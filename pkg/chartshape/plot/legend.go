package plot

import (
	"github.com/lucasb-eyer/go-colorful"
)

// LegendPosition places the legend around the plot area.
type LegendPosition int

const (
	LegendNone LegendPosition = iota
	LegendTop
	LegendBottom
	LegendStart
	LegendEnd
	LegendTopStart
	LegendTopEnd
	LegendBottomStart
	LegendBottomEnd
)

var legendPositionNames = map[LegendPosition]string{
	LegendNone:        "none",
	LegendTop:         "top",
	LegendBottom:      "bottom",
	LegendStart:       "start",
	LegendEnd:         "end",
	LegendTopStart:    "top-start",
	LegendTopEnd:      "top-end",
	LegendBottomStart: "bottom-start",
	LegendBottomEnd:   "bottom-end",
}

func (p LegendPosition) String() string {
	if s, ok := legendPositionNames[p]; ok {
		return s
	}
	return "none"
}

// ParseLegendPosition reads the chart:legend-position values. "left" and
// "right" are accepted as aliases of start and end.
func ParseLegendPosition(s string) (LegendPosition, bool) {
	switch s {
	case "left":
		return LegendStart, true
	case "right":
		return LegendEnd, true
	}
	for p, name := range legendPositionNames {
		if name == s {
			return p, true
		}
	}
	return LegendNone, false
}

// LegendAlignment aligns the legend along its side.
type LegendAlignment int

const (
	AlignCenter LegendAlignment = iota
	AlignStart
	AlignEnd
)

func (a LegendAlignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	}
	return "center"
}

// ParseLegendAlignment reads "start", "center" or "end".
func ParseLegendAlignment(s string) LegendAlignment {
	switch s {
	case "start":
		return AlignStart
	case "end":
		return AlignEnd
	}
	return AlignCenter
}

// LegendExpansion controls how legend entries wrap.
type LegendExpansion int

const (
	ExpansionBalanced LegendExpansion = iota
	ExpansionWide
	ExpansionHigh
)

func (e LegendExpansion) String() string {
	switch e {
	case ExpansionWide:
		return "wide"
	case ExpansionHigh:
		return "high"
	}
	return "balanced"
}

// ParseLegendExpansion reads "balanced", "wide" or "high".
func ParseLegendExpansion(s string) LegendExpansion {
	switch s {
	case "wide":
		return ExpansionWide
	case "high":
		return ExpansionHigh
	}
	return ExpansionBalanced
}

// Font describes text appearance.
type Font struct {
	Family string
	Size   float64
	Bold   bool
	Italic bool
}

// DefaultFont is used for labels without explicit font settings.
var DefaultFont = Font{Family: "Sans", Size: 10}

// Legend holds the legend settings of a chart.
type Legend struct {
	Position   LegendPosition
	Alignment  LegendAlignment
	Expansion  LegendExpansion
	Title      string
	ShowFrame  bool
	TitleColor colorful.Color
	TextColor  colorful.Color
	TitleFont  Font
	Font       Font
}

// NewLegend returns a legend on the end side with black text.
func NewLegend() *Legend {
	black := colorful.Color{}
	return &Legend{
		Position:   LegendEnd,
		Alignment:  AlignCenter,
		Expansion:  ExpansionHigh,
		ShowFrame:  true,
		TitleColor: black,
		TextColor:  black,
		TitleFont:  Font{Family: DefaultFont.Family, Size: DefaultFont.Size, Bold: true},
		Font:       DefaultFont,
	}
}

// Visible reports whether the legend is shown.
func (l *Legend) Visible() bool {
	return l.Position != LegendNone
}
