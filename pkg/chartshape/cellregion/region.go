// Package cellregion parses and formats references to rectangular cell
// ranges inside named tables, such as "Sheet1.A1:B10;Sheet1.D1:D10".
package cellregion

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Resolver reports the current extent of a named table.
type Resolver interface {
	Extent(table string) (rows, cols int, ok bool)
}

// Range is one rectangle of a table. Rows and columns are 0-based and
// the end coordinates are inclusive.
type Range struct {
	Table    string
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// NewRange returns a range with start and end ordered.
func NewRange(table string, startRow, startCol, endRow, endCol int) Range {
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	return Range{Table: table, StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol}
}

// Cell returns a single-cell range.
func Cell(table string, row, col int) Range {
	return Range{Table: table, StartRow: row, StartCol: col, EndRow: row, EndCol: col}
}

// Rows returns the number of rows covered.
func (r Range) Rows() int { return r.EndRow - r.StartRow + 1 }

// Columns returns the number of columns covered.
func (r Range) Columns() int { return r.EndCol - r.StartCol + 1 }

// IsCell reports whether the range covers exactly one cell.
func (r Range) IsCell() bool { return r.StartRow == r.EndRow && r.StartCol == r.EndCol }

// Contains reports whether row, col lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// String returns the canonical form "Table.A1:B2" or "Table.A1".
func (r Range) String() string {
	start := cellName(r.StartRow, r.StartCol, false)
	if r.IsCell() {
		return quoteTable(r.Table) + "." + start
	}
	return quoteTable(r.Table) + "." + start + ":" + cellName(r.EndRow, r.EndCol, false)
}

func (r Range) within(rows, cols int) bool {
	return r.StartRow >= 0 && r.StartCol >= 0 && r.EndRow < rows && r.EndCol < cols
}

// Region is an immutable ordered list of ranges.
type Region struct {
	ranges []Range
}

// New returns a region made of the given ranges.
func New(ranges ...Range) Region {
	if len(ranges) == 0 {
		return Region{}
	}
	rs := make([]Range, len(ranges))
	copy(rs, ranges)
	return Region{ranges: rs}
}

// Ranges returns a copy of the ranges.
func (g Region) Ranges() []Range {
	rs := make([]Range, len(g.ranges))
	copy(rs, g.ranges)
	return rs
}

// Len returns the number of ranges.
func (g Region) Len() int { return len(g.ranges) }

// IsEmpty reports whether the region has no ranges.
func (g Region) IsEmpty() bool { return len(g.ranges) == 0 }

// Table returns the table of the first range, or "".
func (g Region) Table() string {
	if len(g.ranges) == 0 {
		return ""
	}
	return g.ranges[0].Table
}

// Tables returns the distinct table names in order of appearance.
func (g Region) Tables() []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range g.ranges {
		if !seen[r.Table] {
			seen[r.Table] = true
			names = append(names, r.Table)
		}
	}
	return names
}

// BoundingRange returns the smallest range covering every range of table.
func (g Region) BoundingRange(table string) (Range, bool) {
	var out Range
	found := false
	for _, r := range g.ranges {
		if r.Table != table {
			continue
		}
		if !found {
			out = r
			found = true
			continue
		}
		out.StartRow = min(out.StartRow, r.StartRow)
		out.StartCol = min(out.StartCol, r.StartCol)
		out.EndRow = max(out.EndRow, r.EndRow)
		out.EndCol = max(out.EndCol, r.EndCol)
	}
	return out, found
}

// Cells returns the coordinates of every cell in range order, row by row.
func (g Region) Cells() []Range {
	var cells []Range
	for _, r := range g.ranges {
		for row := r.StartRow; row <= r.EndRow; row++ {
			for col := r.StartCol; col <= r.EndCol; col++ {
				cells = append(cells, Cell(r.Table, row, col))
			}
		}
	}
	return cells
}

// Equal reports whether both regions hold the same ranges in the same order.
func (g Region) Equal(o Region) bool {
	if len(g.ranges) != len(o.ranges) {
		return false
	}
	for i := range g.ranges {
		if g.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

// String returns the canonical text form, ranges joined by ";".
func (g Region) String() string {
	parts := make([]string, len(g.ranges))
	for i, r := range g.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ";")
}

// Resolve checks the region against the current tables of src.
// It returns ErrUnknownTable or ErrUnresolvedRegion, wrapped with the
// offending range.
func (g Region) Resolve(src Resolver) error {
	if len(g.ranges) == 0 {
		return fmt.Errorf("%w: empty region", ErrUnresolvedRegion)
	}
	if src == nil {
		return fmt.Errorf("%w: no table source", ErrUnknownTable)
	}
	for _, r := range g.ranges {
		rows, cols, ok := src.Extent(r.Table)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTable, r.Table)
		}
		if !r.within(rows, cols) {
			return fmt.Errorf("%w: %s (table is %dx%d)", ErrUnresolvedRegion, r, rows, cols)
		}
	}
	return nil
}

// IsValid reports whether every table exists and every rectangle lies
// within its table. An empty region is not valid.
func (g Region) IsValid(src Resolver) bool {
	return g.Resolve(src) == nil
}

func cellName(row, col int, abs bool) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1, abs)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row+1, col+1)
	}
	return name
}

// quoteTable quotes names that would not survive a re-parse.
func quoteTable(name string) string {
	plain := name != ""
	for _, ch := range name {
		if !(ch == '_' || ch == '-' || ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch > 127) {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
