package models

import "strings"

// ChartType identifies the chart family drawn by a plot area or data set.
type ChartType int

const (
	BarChartType ChartType = iota
	LineChartType
	AreaChartType
	CircleChartType
	RingChartType
	ScatterChartType
	RadarChartType
	StockChartType
	BubbleChartType
	SurfaceChartType
	GanttChartType
	// LastChartType doubles as "no chart type" for data set overrides.
	LastChartType
)

// NoChartType is the absent per-series override.
const NoChartType = LastChartType

// ODFChartClasses maps chart types to their chart:class attribute values.
var ODFChartClasses = map[ChartType]string{
	BarChartType:     "chart:bar",
	LineChartType:    "chart:line",
	AreaChartType:    "chart:area",
	CircleChartType:  "chart:circle",
	RingChartType:    "chart:ring",
	ScatterChartType: "chart:scatter",
	RadarChartType:   "chart:radar",
	StockChartType:   "chart:stock",
	BubbleChartType:  "chart:bubble",
	SurfaceChartType: "chart:surface",
	GanttChartType:   "chart:gantt",
}

// ChartTypeFromClass resolves a chart:class value. The "chart:" prefix is optional.
func ChartTypeFromClass(class string) (ChartType, bool) {
	if !strings.HasPrefix(class, "chart:") {
		class = "chart:" + class
	}
	for t, c := range ODFChartClasses {
		if c == class {
			return t, true
		}
	}
	return NoChartType, false
}

// Class returns the chart:class value, or "" for NoChartType.
func (t ChartType) Class() string {
	return ODFChartClasses[t]
}

func (t ChartType) String() string {
	if c, ok := ODFChartClasses[t]; ok {
		return strings.TrimPrefix(c, "chart:")
	}
	return "none"
}

// MarshalText writes the chart class name, for JSON output.
func (t ChartType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText reads a chart class name; unknown names give NoChartType.
func (t *ChartType) UnmarshalText(b []byte) error {
	*t, _ = ChartTypeFromClass(string(b))
	return nil
}

// Dimensions returns how many values make up one data point.
func (t ChartType) Dimensions() int {
	switch t {
	case ScatterChartType:
		return 2
	case BubbleChartType:
		return 3
	}
	return 1
}

// HasSubtypes reports whether stacked and percent variants exist.
func (t ChartType) HasSubtypes() bool {
	return t == BarChartType || t == LineChartType || t == AreaChartType
}

// ChartSubtype refines a chart type.
type ChartSubtype int

const (
	NoChartSubtype ChartSubtype = iota
	NormalChartSubtype
	StackedChartSubtype
	PercentChartSubtype
)

func (s ChartSubtype) String() string {
	switch s {
	case NormalChartSubtype:
		return "normal"
	case StackedChartSubtype:
		return "stacked"
	case PercentChartSubtype:
		return "percent"
	}
	return "none"
}

// MarshalText writes the subtype name.
func (s ChartSubtype) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a subtype name.
func (s *ChartSubtype) UnmarshalText(b []byte) error {
	*s = ChartSubtypeFromString(string(b))
	return nil
}

// ChartSubtypeFromString parses the names produced by ChartSubtype.String.
func ChartSubtypeFromString(s string) ChartSubtype {
	switch s {
	case "normal":
		return NormalChartSubtype
	case "stacked":
		return StackedChartSubtype
	case "percent":
		return PercentChartSubtype
	}
	return NoChartSubtype
}

// ChartSeries represents series metadata for an imported chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the range reference for category or X values.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference for Y values.
	YRange string `json:"y_range,omitempty"`
	// ChartType is the family of the plot group holding the series. It
	// differs from the chart's type in combination charts.
	ChartType ChartType `json:"chart_type"`
	// Color is the explicit series fill as "#rrggbb", if any.
	Color string `json:"color,omitempty"`
}

// Chart represents chart metadata read from a workbook.
type Chart struct {
	// Name is the chart name.
	Name string `json:"name"`
	// ChartType is the chart family.
	ChartType ChartType `json:"chart_type"`
	// Subtype is the grouping (normal, stacked, percent).
	Subtype ChartSubtype `json:"subtype"`
	// ThreeD is set for the 3D variants of a family.
	ThreeD bool `json:"three_d,omitempty"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// XAxisTitle is the category or X-axis title.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisTitle is the Y-axis title.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// YAxisRange is the Y-axis range [min, max] when available.
	YAxisRange []float64 `json:"y_axis_range,omitempty"`
	// W is the chart width in pixels (nil if unknown).
	W *int `json:"w,omitempty"`
	// H is the chart height in pixels (nil if unknown).
	H *int `json:"h,omitempty"`
	// Series is the list of series included in the chart.
	Series []ChartSeries `json:"series"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
}
