package chartshape

import (
	"errors"
	"fmt"
)

// ErrUnsupportedChartClass indicates a chart:chart element whose chart:class
// is missing or not one of the known chart types.
var ErrUnsupportedChartClass = errors.New("unsupported chart class")

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a chart document or workbook.
var ErrInvalidFormat = errors.New("invalid document format")

// ErrNoChart indicates a document without a chart:chart element.
var ErrNoChart = errors.New("no chart element")

// LoadError records one chart object that failed to load while the rest of
// the document kept loading.
type LoadError struct {
	Object    string // object path in a package, or sheet name on import
	Component string // "chart", "table", "plot-area", "legend", "label"
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in %q (%s): %v", e.Object, e.Component, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(object, component string, err error) *LoadError {
	return &LoadError{
		Object:    object,
		Component: component,
		Err:       err,
	}
}
