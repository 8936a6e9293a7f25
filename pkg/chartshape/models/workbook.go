package models

// SeriesData is the JSON view of a data set.
type SeriesData struct {
	Label      string     `json:"label"`
	Color      string     `json:"color"`
	ChartType  string     `json:"chart_type,omitempty"`
	Subtype    string     `json:"subtype,omitempty"`
	Values     []*float64 `json:"values"`
	Categories []string   `json:"categories,omitempty"`
	XValues    []*float64 `json:"x_values,omitempty"`
	ShowValues bool       `json:"show_values,omitempty"`
	ShowLabels bool       `json:"show_labels,omitempty"`
}

// AxisData is the JSON view of an axis.
type AxisData struct {
	Dimension string `json:"dimension"`
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	Visible   bool   `json:"visible"`
}

// ShapeData is the JSON view of a chart shape.
type ShapeData struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	ChartType string       `json:"chart_type"`
	Subtype   string       `json:"subtype"`
	ThreeD    bool         `json:"three_d,omitempty"`
	Title     string       `json:"title,omitempty"`
	Subtitle  string       `json:"subtitle,omitempty"`
	Footer    string       `json:"footer,omitempty"`
	Legend    string       `json:"legend"`
	Region    string       `json:"region,omitempty"`
	Direction string       `json:"direction"`
	Axes      []AxisData   `json:"axes,omitempty"`
	Series    []SeriesData `json:"series"`
	Tables    []TableData  `json:"tables,omitempty"`
	// L, T, W, H are the frame geometry in centimetres.
	L float64 `json:"l"`
	T float64 `json:"t"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Document is the JSON view of a set of chart shapes.
type Document struct {
	// Source is the file the shapes were read from (no path).
	Source string `json:"source"`
	// Shapes holds every loaded chart.
	Shapes []ShapeData `json:"shapes"`
	// Errors lists objects that failed to load.
	Errors []string `json:"errors,omitempty"`
}
