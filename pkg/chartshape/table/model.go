package table

import (
	"errors"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

// ErrOutOfRange is returned when writing outside a fixed-size model.
var ErrOutOfRange = errors.New("cell out of range")

// ErrReadOnly is returned by models that do not accept writes.
var ErrReadOnly = errors.New("table is read-only")

// Model is a two-dimensional grid of typed cell values.
// Reads outside the grid return an empty value.
type Model interface {
	RowCount() int
	ColumnCount() int
	Cell(row, col int) models.Value
	SetCell(row, col int, v models.Value) error
}

// Notifier is implemented by models that report their own changes.
type Notifier interface {
	Changed() *Signal
}
