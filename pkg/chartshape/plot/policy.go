package plot

import (
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

// Policy decides which chart types may be mixed in one plot area through
// per data set overrides.
type Policy struct {
	combinable map[models.ChartType]bool
}

// DefaultCombinable lists the chart types that mix by default.
var DefaultCombinable = []models.ChartType{models.BarChartType, models.LineChartType, models.AreaChartType}

// NewPolicy returns a policy in which the given types mix with each other.
func NewPolicy(types ...models.ChartType) Policy {
	p := Policy{combinable: make(map[models.ChartType]bool, len(types))}
	for _, t := range types {
		p.combinable[t] = true
	}
	return p
}

// DefaultPolicy lets bar, line and area charts mix.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultCombinable...)
}

// PolicyFromClasses builds a policy from chart class names such as "bar".
// Unknown names are ignored.
func PolicyFromClasses(classes []string) Policy {
	var types []models.ChartType
	for _, c := range classes {
		if t, ok := models.ChartTypeFromClass(c); ok {
			types = append(types, t)
		}
	}
	return NewPolicy(types...)
}

// Combinable reports whether a data set of type override may be drawn in a
// plot area of type base. Clearing an override is always allowed.
func (p Policy) Combinable(base, override models.ChartType) bool {
	if override == models.NoChartType || override == base {
		return true
	}
	return p.combinable[base] && p.combinable[override]
}

// Types returns the combinable types in chart type order.
func (p Policy) Types() []models.ChartType {
	var out []models.ChartType
	for t := models.ChartType(0); t < models.LastChartType; t++ {
		if p.combinable[t] {
			out = append(out, t)
		}
	}
	return out
}
