// Package proxy exposes a cell region of a table as a logical grid of
// series, applying the data direction and the label row and column.
package proxy

import (
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// Direction selects which source axis holds the series.
type Direction int

const (
	// RowMajor makes every source row one series.
	RowMajor Direction = iota
	// ColumnMajor makes every source column one series.
	ColumnMajor
)

func (d Direction) String() string {
	if d == ColumnMajor {
		return "columns"
	}
	return "rows"
}

// ParseDirection accepts "rows" or "columns"; anything else is RowMajor.
func ParseDirection(s string) Direction {
	switch s {
	case "columns", "column", "column-major":
		return ColumnMajor
	}
	return RowMajor
}

// Orientation selects the header axis for HeaderData.
type Orientation int

const (
	// Vertical headers label logical rows (series).
	Vertical Orientation = iota
	// Horizontal headers label logical columns (categories).
	Horizontal
)

// Model is the logical view over a region. It does not own the table it
// reads: the table is looked up by name on every access, so a removed
// table reads as empty.
type Model struct {
	src       *table.Source
	region    cellregion.Region
	direction Direction
	rowLabel  bool
	colLabel  bool

	changed     table.Signal
	srcConn     func()
	modelConn   func()
	watchedData table.Model
}

// New returns a proxy over src with an empty region.
func New(src *table.Source) *Model {
	m := &Model{src: src}
	if src != nil {
		m.srcConn = src.Changed().Connect(m.onSourceChange)
	}
	return m
}

// Close detaches the proxy from its source.
func (m *Model) Close() {
	if m.srcConn != nil {
		m.srcConn()
		m.srcConn = nil
	}
	m.unwatchModel()
}

// Changed returns the signal carrying the proxy's notifications. Logical
// coordinates are used throughout.
func (m *Model) Changed() *table.Signal {
	return &m.changed
}

// Source returns the table source.
func (m *Model) Source() *table.Source { return m.src }

// Region returns the bound region.
func (m *Model) Region() cellregion.Region { return m.region }

// DataDirection returns the current direction.
func (m *Model) DataDirection() Direction { return m.direction }

// FirstRowIsLabel reports whether the first source row holds labels.
func (m *Model) FirstRowIsLabel() bool { return m.rowLabel }

// FirstColumnIsLabel reports whether the first source column holds labels.
func (m *Model) FirstColumnIsLabel() bool { return m.colLabel }

// Reset rebinds the proxy to region and notifies a reset.
func (m *Model) Reset(region cellregion.Region) {
	m.region = region
	m.watchModel()
	if !region.IsEmpty() {
		if err := region.Resolve(m.src); err != nil {
			log.Debug().Err(err).Str("region", region.String()).Msg("proxy bound to unresolved region")
		}
	}
	m.emitReset()
}

// SetDataDirection changes the direction. Counts may change, so a reset is
// emitted followed by a data change over the whole grid.
func (m *Model) SetDataDirection(d Direction) {
	if d == m.direction {
		return
	}
	m.direction = d
	m.emitReset()
}

// SetFirstRowIsLabel toggles the label row.
func (m *Model) SetFirstRowIsLabel(b bool) {
	if b == m.rowLabel {
		return
	}
	rows, cols := m.RowCount(), m.ColumnCount()
	m.rowLabel = b
	m.emitLabelToggle(rows, cols, b)
}

// SetFirstColumnIsLabel toggles the label column.
func (m *Model) SetFirstColumnIsLabel(b bool) {
	if b == m.colLabel {
		return
	}
	rows, cols := m.RowCount(), m.ColumnCount()
	m.colLabel = b
	m.emitLabelToggle(rows, cols, b)
}

// view returns the model and the source rectangle the region covers, or
// false when the region does not resolve.
func (m *Model) view() (table.Model, cellregion.Range, bool) {
	if m.src == nil || m.region.IsEmpty() || !m.region.IsValid(m.src) {
		return nil, cellregion.Range{}, false
	}
	name := m.region.Table()
	r, _ := m.region.BoundingRange(name)
	t := m.src.Get(name)
	if t == nil {
		return nil, cellregion.Range{}, false
	}
	return t.Model(), r, true
}

// sourceExtent returns the size of the region in source rows and columns.
func (m *Model) sourceExtent() (rows, cols int) {
	_, r, ok := m.view()
	if !ok {
		return 0, 0
	}
	return r.Rows(), r.Columns()
}

func (m *Model) rowOffset() int {
	if m.rowLabel {
		return 1
	}
	return 0
}

func (m *Model) colOffset() int {
	if m.colLabel {
		return 1
	}
	return 0
}

func shrink(n int, label bool) int {
	if label && n > 0 {
		return n - 1
	}
	return n
}

// RowCount returns the number of logical rows, that is series.
func (m *Model) RowCount() int {
	rows, cols := m.sourceExtent()
	if m.direction == ColumnMajor {
		return shrink(cols, m.colLabel)
	}
	return shrink(rows, m.rowLabel)
}

// ColumnCount returns the number of logical columns, that is values per
// series.
func (m *Model) ColumnCount() int {
	rows, cols := m.sourceExtent()
	if m.direction == ColumnMajor {
		return shrink(rows, m.rowLabel)
	}
	return shrink(cols, m.colLabel)
}

// MapToSource converts logical coordinates into table coordinates. It is
// the only mapping used for reads and writes.
func (m *Model) MapToSource(row, col int) (srow, scol int, ok bool) {
	if row < 0 || col < 0 || row >= m.RowCount() || col >= m.ColumnCount() {
		return 0, 0, false
	}
	_, r, ok := m.view()
	if !ok {
		return 0, 0, false
	}
	srow, scol = m.sourceCell(r, row, col)
	return srow, scol, true
}

// sourceCell applies the direction swap and the label offsets to logical
// coordinates. Row or column -1 addresses the header, which lands outside
// r when the matching label flag is not set.
func (m *Model) sourceCell(r cellregion.Range, row, col int) (srow, scol int) {
	if m.direction == ColumnMajor {
		row, col = col, row
	}
	return r.StartRow + row + m.rowOffset(), r.StartCol + col + m.colOffset()
}

// Data returns the value at logical row, col, or an empty value.
func (m *Model) Data(row, col int) models.Value {
	srow, scol, ok := m.MapToSource(row, col)
	if !ok {
		return models.Value{}
	}
	tm, _, _ := m.view()
	return tm.Cell(srow, scol)
}

// SetData writes the value at logical row, col.
func (m *Model) SetData(row, col int, v models.Value) error {
	srow, scol, ok := m.MapToSource(row, col)
	if !ok {
		return table.ErrOutOfRange
	}
	tm, _, _ := m.view()
	if err := tm.SetCell(srow, scol, v); err != nil {
		return err
	}
	if _, notifies := tm.(table.Notifier); !notifies {
		m.changed.Emit(table.Change{Kind: table.DataChanged, FromRow: row, FromCol: col, ToRow: row, ToCol: col})
	}
	return nil
}

// HeaderData returns the label of a logical row (Vertical) or column
// (Horizontal). It is empty unless the matching label flag is set.
func (m *Model) HeaderData(section int, o Orientation) models.Value {
	_, r, ok := m.view()
	if !ok || section < 0 {
		return models.Value{}
	}
	row, col, n := section, -1, m.RowCount()
	if o == Horizontal {
		row, col, n = -1, section, m.ColumnCount()
	}
	if section >= n {
		return models.Value{}
	}
	srow, scol := m.sourceCell(r, row, col)
	if !r.Contains(srow, scol) {
		return models.Value{}
	}
	tm, _, _ := m.view()
	return tm.Cell(srow, scol)
}

// SourceRange returns the table rectangle currently read, including labels.
func (m *Model) SourceRange() (cellregion.Range, bool) {
	_, r, ok := m.view()
	return r, ok
}

func (m *Model) emitLabelToggle(rows, cols int, set bool) {
	newRows, newCols := m.RowCount(), m.ColumnCount()
	var kind table.ChangeKind
	switch {
	case newRows != rows && set:
		kind = table.RowsRemoved
	case newRows != rows:
		kind = table.RowsInserted
	case newCols != cols && set:
		kind = table.ColumnsRemoved
	case newCols != cols:
		kind = table.ColumnsInserted
	default:
		// The source is empty along the affected axis.
		m.changed.Emit(table.Change{Kind: table.Reset})
		return
	}
	m.changed.Emit(table.Change{Kind: kind, First: 0, Last: 0})
	m.emitDataChanged()
}

func (m *Model) emitReset() {
	m.changed.Emit(table.Change{Kind: table.Reset})
	m.emitDataChanged()
}

func (m *Model) emitDataChanged() {
	rows, cols := m.RowCount(), m.ColumnCount()
	if rows == 0 || cols == 0 {
		return
	}
	m.changed.Emit(table.Change{Kind: table.DataChanged, ToRow: rows - 1, ToCol: cols - 1})
}

func (m *Model) onSourceChange(c table.Change) {
	switch c.Kind {
	case table.TableAdded, table.TableRemoved:
		if c.Table != m.region.Table() || m.region.IsEmpty() {
			return
		}
	case table.Reset:
	default:
		return
	}
	m.watchModel()
	m.emitReset()
}

// watchModel subscribes to the bound table's own notifications.
func (m *Model) watchModel() {
	var tm table.Model
	if m.src != nil && !m.region.IsEmpty() {
		if t := m.src.Get(m.region.Table()); t != nil {
			tm = t.Model()
		}
	}
	if tm == m.watchedData && m.modelConn != nil {
		return
	}
	m.unwatchModel()
	n, ok := tm.(table.Notifier)
	if !ok {
		return
	}
	m.watchedData = tm
	m.modelConn = n.Changed().Connect(m.onModelChange)
}

func (m *Model) unwatchModel() {
	if m.modelConn != nil {
		m.modelConn()
		m.modelConn = nil
	}
	m.watchedData = nil
}

func (m *Model) onModelChange(c table.Change) {
	if c.IsStructural() {
		// Growing or shrinking a table can make the region resolve or not.
		m.emitReset()
		return
	}
	if c.Kind == table.DataChanged {
		m.emitDataChanged()
	}
}
