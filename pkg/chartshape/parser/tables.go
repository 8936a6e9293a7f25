package parser

import (
	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// DensityMin is the minimum share of non-empty cells in a block.
	DensityMin float64
	// CoverageMin is the minimum share of block columns holding a value.
	CoverageMin float64
	// MinNonemptyCells rejects blocks with fewer values.
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.2,
		MinNonemptyCells: 3,
	}
}

// bounds is an inclusive cell rectangle; minRow < 0 means empty.
type bounds struct {
	minRow, maxRow, minCol, maxCol int
}

func (b *bounds) add(row, col int) {
	if b.minRow < 0 || row < b.minRow {
		b.minRow = row
	}
	if row > b.maxRow {
		b.maxRow = row
	}
	if b.minCol < 0 || col < b.minCol {
		b.minCol = col
	}
	if col > b.maxCol {
		b.maxCol = col
	}
}

// DetectTables finds table-like blocks of m. Blocks are separated by fully
// empty rows and returned top to bottom as ranges of the table name.
func DetectTables(m table.Model, name string, params TableDetectionParams) []cellregion.Range {
	var out []cellregion.Range
	block := bounds{-1, -1, -1, -1}
	flush := func() {
		if block.minRow >= 0 {
			if r, ok := acceptBlock(m, name, block, params); ok {
				out = append(out, r)
			}
		}
		block = bounds{-1, -1, -1, -1}
	}
	for row := 0; row < m.RowCount(); row++ {
		empty := true
		for col := 0; col < m.ColumnCount(); col++ {
			if !m.Cell(row, col).IsEmpty() {
				block.add(row, col)
				empty = false
			}
		}
		if empty {
			flush()
		}
	}
	flush()
	return out
}

func acceptBlock(m table.Model, name string, b bounds, params TableDetectionParams) (cellregion.Range, bool) {
	rows := b.maxRow - b.minRow + 1
	cols := b.maxCol - b.minCol + 1
	nonEmpty := 0
	usedCols := 0
	for col := b.minCol; col <= b.maxCol; col++ {
		used := false
		for row := b.minRow; row <= b.maxRow; row++ {
			if !m.Cell(row, col).IsEmpty() {
				nonEmpty++
				used = true
			}
		}
		if used {
			usedCols++
		}
	}
	if nonEmpty < params.MinNonemptyCells {
		return cellregion.Range{}, false
	}
	if float64(nonEmpty)/float64(rows*cols) < params.DensityMin {
		return cellregion.Range{}, false
	}
	if float64(usedCols)/float64(cols) < params.CoverageMin {
		return cellregion.Range{}, false
	}
	return cellregion.NewRange(name, b.minRow, b.minCol, b.maxRow, b.maxCol), true
}
