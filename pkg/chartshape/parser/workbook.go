package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// Workbook exposes the sheets of a spreadsheet as tables. It implements
// table.SheetAccess so charts can refer to sheet ranges by sheet name.
type Workbook struct {
	f      *excelize.File
	names  []string
	sheets map[string]*SheetModel
}

// OpenWorkbook opens the xlsx file at path and reads every sheet.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	wb, err := NewWorkbook(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return wb, nil
}

// NewWorkbook wraps an open excelize file. Sheet values are read once;
// later writes go through SheetModel.SetCell.
func NewWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{
		f:      f,
		names:  f.GetSheetList(),
		sheets: make(map[string]*SheetModel),
	}
	for _, name := range wb.names {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.sheets[name] = newSheetModel(f, name, rows)
	}
	return wb, nil
}

// File returns the underlying excelize file.
func (wb *Workbook) File() *excelize.File { return wb.f }

// SheetNames lists the sheets in workbook order.
func (wb *Workbook) SheetNames() []string {
	out := make([]string, len(wb.names))
	copy(out, wb.names)
	return out
}

// Sheet returns the model of the named sheet.
func (wb *Workbook) Sheet(name string) (table.Model, bool) {
	s, ok := wb.sheets[name]
	if !ok {
		return nil, false
	}
	return s, true
}

// SheetModel returns the concrete model of the named sheet, or nil.
func (wb *Workbook) SheetModel(name string) *SheetModel {
	return wb.sheets[name]
}

// Close releases the excelize file.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// SheetModel is one worksheet as a table.Model. Reads come from a cache
// filled on open; writes update both the cache and the workbook.
type SheetModel struct {
	f     *excelize.File
	sheet string
	grid  *table.Grid
}

func newSheetModel(f *excelize.File, sheet string, rows [][]string) *SheetModel {
	return &SheetModel{f: f, sheet: sheet, grid: table.GridFromStrings(rows)}
}

// Name returns the sheet name.
func (s *SheetModel) Name() string { return s.sheet }

func (s *SheetModel) RowCount() int    { return s.grid.RowCount() }
func (s *SheetModel) ColumnCount() int { return s.grid.ColumnCount() }

// Cell returns the cached value at row, col (0-based).
func (s *SheetModel) Cell(row, col int) models.Value { return s.grid.Cell(row, col) }

// SetCell writes v to the workbook and the cache.
func (s *SheetModel) SetCell(row, col int, v models.Value) error {
	if row < 0 || col < 0 {
		return table.ErrOutOfRange
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	var raw interface{}
	switch v.Kind {
	case models.KindString:
		raw = v.Str
	case models.KindNumber:
		raw = v.Num
	case models.KindBool:
		raw = v.Bool
	case models.KindDateTime:
		raw = v.Time
	}
	if err := s.f.SetCellValue(s.sheet, cell, raw); err != nil {
		return err
	}
	return s.grid.SetCell(row, col, v)
}

// Changed returns the signal emitted on writes.
func (s *SheetModel) Changed() *table.Signal { return s.grid.Changed() }
