// Package table holds named two-dimensional data grids and the registry
// that resolves table names for cell regions and proxy models.
package table

// ChangeKind tells listeners what changed.
type ChangeKind int

const (
	// Reset means every row, column and value may have changed.
	Reset ChangeKind = iota
	RowsInserted
	RowsRemoved
	ColumnsInserted
	ColumnsRemoved
	// DataChanged covers the rectangle FromRow,FromCol .. ToRow,ToCol.
	DataChanged
	// TableAdded and TableRemoved are emitted by a Source; Table holds the name.
	TableAdded
	TableRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case Reset:
		return "reset"
	case RowsInserted:
		return "rows-inserted"
	case RowsRemoved:
		return "rows-removed"
	case ColumnsInserted:
		return "columns-inserted"
	case ColumnsRemoved:
		return "columns-removed"
	case DataChanged:
		return "data-changed"
	case TableAdded:
		return "table-added"
	case TableRemoved:
		return "table-removed"
	}
	return "unknown"
}

// Change describes one notification.
type Change struct {
	Kind ChangeKind
	// First and Last bound inserted or removed rows/columns (inclusive).
	First, Last int
	// FromRow..ToCol bound a DataChanged rectangle (inclusive).
	FromRow, FromCol, ToRow, ToCol int
	// Table is the affected table name for source notifications.
	Table string
}

// IsStructural reports whether the change alters row or column counts.
func (c Change) IsStructural() bool {
	switch c.Kind {
	case Reset, RowsInserted, RowsRemoved, ColumnsInserted, ColumnsRemoved:
		return true
	}
	return false
}

// Slot receives changes.
type Slot func(Change)

type connection struct {
	id   int
	slot Slot
}

// Signal delivers changes to connected slots, in connection order, on the
// caller's goroutine. Emit returns after every slot has run.
type Signal struct {
	cons   []connection
	nextID int
}

// Connect attaches a slot and returns a function that detaches it.
func (s *Signal) Connect(slot Slot) (disconnect func()) {
	if slot == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.cons = append(s.cons, connection{id: id, slot: slot})
	return func() { s.disconnect(id) }
}

func (s *Signal) disconnect(id int) {
	for i, con := range s.cons {
		if con.id == id {
			copy(s.cons[i:], s.cons[i+1:])
			s.cons = s.cons[:len(s.cons)-1]
			return
		}
	}
}

// Emit sends c to every slot connected at the time of the call.
func (s *Signal) Emit(c Change) {
	cons := make([]connection, len(s.cons))
	copy(cons, s.cons)
	for _, con := range cons {
		con.slot(c)
	}
}

// Len returns the number of connected slots.
func (s *Signal) Len() int {
	return len(s.cons)
}
