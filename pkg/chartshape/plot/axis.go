package plot

// AxisDimension is the data dimension an axis measures.
type AxisDimension int

const (
	XAxisDimension AxisDimension = iota
	YAxisDimension
	ZAxisDimension
)

func (d AxisDimension) String() string {
	switch d {
	case YAxisDimension:
		return "y"
	case ZAxisDimension:
		return "z"
	}
	return "x"
}

// ParseAxisDimension reads "x", "y" or "z".
func ParseAxisDimension(s string) (AxisDimension, bool) {
	switch s {
	case "x":
		return XAxisDimension, true
	case "y":
		return YAxisDimension, true
	case "z":
		return ZAxisDimension, true
	}
	return XAxisDimension, false
}

// Axis holds the settings of one plot axis. Min, Max and Step only apply
// when the matching Auto flag is cleared.
type Axis struct {
	Dimension AxisDimension
	// Name identifies the axis when a plot area has several per dimension,
	// for example "primary-y" and "secondary-y".
	Name        string
	Title       string
	Visible     bool
	ShowGrid    bool
	Logarithmic bool
	AutoMin     bool
	AutoMax     bool
	AutoStep    bool
	Min         float64
	Max         float64
	Step        float64
}

// NewAxis returns a visible automatically scaled axis.
func NewAxis(dim AxisDimension, name string) *Axis {
	return &Axis{
		Dimension: dim,
		Name:      name,
		Visible:   true,
		ShowGrid:  dim == YAxisDimension,
		AutoMin:   true,
		AutoMax:   true,
		AutoStep:  true,
	}
}

// SetRange fixes the minimum and maximum.
func (a *Axis) SetRange(min, max float64) {
	if max < min {
		min, max = max, min
	}
	a.Min, a.Max = min, max
	a.AutoMin, a.AutoMax = false, false
}
