package table

import (
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

// Grid is the in-memory Model backing internal tables.
// Writing past the current extent grows the grid.
type Grid struct {
	rows    [][]models.Value
	cols    int
	changed Signal
}

// NewGrid returns an empty grid of the given size.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid{cols: cols}
	g.rows = make([][]models.Value, rows)
	for r := range g.rows {
		g.rows[r] = make([]models.Value, cols)
	}
	return g
}

// GridFromRows builds a grid from row slices. Short rows are padded.
func GridFromRows(rows [][]models.Value) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		copy(g.rows[r], row)
	}
	return g
}

// GridFromStrings builds a grid interpreting each string with models.ParseValue.
func GridFromStrings(rows [][]string) *Grid {
	values := make([][]models.Value, len(rows))
	for r, row := range rows {
		values[r] = make([]models.Value, len(row))
		for c, s := range row {
			values[r][c] = models.ParseValue(s)
		}
	}
	return GridFromRows(values)
}

func (g *Grid) RowCount() int    { return len(g.rows) }
func (g *Grid) ColumnCount() int { return g.cols }

// Cell returns the value at row, col or an empty value outside the grid.
func (g *Grid) Cell(row, col int) models.Value {
	if row < 0 || col < 0 || row >= len(g.rows) || col >= g.cols {
		return models.Value{}
	}
	return g.rows[row][col]
}

// SetCell stores v, growing the grid when needed.
func (g *Grid) SetCell(row, col int, v models.Value) error {
	if row < 0 || col < 0 {
		return ErrOutOfRange
	}
	if col >= g.cols {
		first := g.cols
		g.cols = col + 1
		for r := range g.rows {
			g.rows[r] = append(g.rows[r], make([]models.Value, g.cols-len(g.rows[r]))...)
		}
		g.changed.Emit(Change{Kind: ColumnsInserted, First: first, Last: col})
	}
	if row >= len(g.rows) {
		first := len(g.rows)
		for len(g.rows) <= row {
			g.rows = append(g.rows, make([]models.Value, g.cols))
		}
		g.changed.Emit(Change{Kind: RowsInserted, First: first, Last: row})
	}
	g.rows[row][col] = v
	g.changed.Emit(Change{Kind: DataChanged, FromRow: row, FromCol: col, ToRow: row, ToCol: col})
	return nil
}

// Resize changes the extent, dropping cells outside it.
func (g *Grid) Resize(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	next := make([][]models.Value, rows)
	for r := range next {
		next[r] = make([]models.Value, cols)
		if r < len(g.rows) {
			copy(next[r], g.rows[r])
		}
	}
	g.rows = next
	g.cols = cols
	g.changed.Emit(Change{Kind: Reset})
}

// Changed returns the grid's change signal.
func (g *Grid) Changed() *Signal {
	return &g.changed
}
