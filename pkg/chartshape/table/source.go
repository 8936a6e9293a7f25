package table

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

// ErrNameCollision is returned by Add when the name is already registered.
var ErrNameCollision = errors.New("table name already in use")

// ErrInvalidTable is returned by Add for an empty name or a nil model.
var ErrInvalidTable = errors.New("invalid table")

// Table is a named model registered in a Source.
type Table struct {
	name     string
	model    Model
	external bool
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Model returns the data model.
func (t *Table) Model() Model { return t.model }

// External reports whether the table comes from a SheetAccess provider.
func (t *Table) External() bool { return t.external }

// SheetAccess supplies tables that a Source does not own, such as the
// sheets of a spreadsheet the chart is embedded next to.
type SheetAccess interface {
	SheetNames() []string
	Sheet(name string) (Model, bool)
}

// Source maps names to tables. Internal tables take precedence over
// tables with the same name offered by the sheet access provider.
type Source struct {
	tables   map[string]*Table
	external map[string]*Table
	sheets   SheetAccess
	changed  Signal
}

// NewSource returns an empty registry.
func NewSource() *Source {
	return &Source{
		tables:   make(map[string]*Table),
		external: make(map[string]*Table),
	}
}

// Add registers model under name. An existing table with that name is
// never replaced; the caller has to Remove it first.
func (s *Source) Add(name string, model Model) (*Table, error) {
	if name == "" || model == nil {
		return nil, ErrInvalidTable
	}
	if _, ok := s.tables[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrNameCollision, name)
	}
	t := &Table{name: name, model: model}
	s.tables[name] = t
	log.Debug().Str("table", name).Int("rows", model.RowCount()).Int("columns", model.ColumnCount()).Msg("table added")
	s.changed.Emit(Change{Kind: TableAdded, Table: name})
	return t, nil
}

// Remove releases the table registered under name and returns it,
// or nil if there is none.
func (s *Source) Remove(name string) *Table {
	t, ok := s.tables[name]
	if !ok {
		return nil
	}
	delete(s.tables, name)
	log.Debug().Str("table", name).Msg("table removed")
	s.changed.Emit(Change{Kind: TableRemoved, Table: name})
	return t
}

// Get returns the table called name, looking at internal tables first and
// then at the sheet access provider. It returns nil if nothing matches.
func (s *Source) Get(name string) *Table {
	if t, ok := s.tables[name]; ok {
		return t
	}
	if s.sheets == nil {
		return nil
	}
	if t, ok := s.external[name]; ok {
		return t
	}
	m, ok := s.sheets.Sheet(name)
	if !ok || m == nil {
		return nil
	}
	t := &Table{name: name, model: m, external: true}
	s.external[name] = t
	return t
}

// GetByModel returns the internal table wrapping model, or nil.
func (s *Source) GetByModel(model Model) *Table {
	if model == nil {
		return nil
	}
	for _, t := range s.tables {
		if t.model == model {
			return t
		}
	}
	for _, t := range s.external {
		if t.model == model {
			return t
		}
	}
	return nil
}

// SetSheetAccessModel installs the external provider. Passing nil removes it.
func (s *Source) SetSheetAccessModel(sheets SheetAccess) {
	s.sheets = sheets
	s.external = make(map[string]*Table)
	s.changed.Emit(Change{Kind: Reset})
}

// SheetAccessModel returns the external provider, if any.
func (s *Source) SheetAccessModel() SheetAccess {
	return s.sheets
}

// Names returns the sorted names of internal tables followed by the
// provider's sheet names not shadowed by an internal table.
func (s *Source) Names() []string {
	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	if s.sheets != nil {
		for _, name := range s.sheets.SheetNames() {
			if _, ok := s.tables[name]; !ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// Tables returns the internal tables sorted by name.
func (s *Source) Tables() []*Table {
	out := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// UniqueName returns base, or base followed by a number, such that no
// table currently resolves under it.
func (s *Source) UniqueName(base string) string {
	if base == "" {
		base = "local-table"
	}
	if s.Get(base) == nil {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s-%d", base, i)
		if s.Get(name) == nil {
			return name
		}
	}
}

// Extent returns the current size of the named table.
func (s *Source) Extent(name string) (rows, cols int, ok bool) {
	t := s.Get(name)
	if t == nil {
		return 0, 0, false
	}
	return t.model.RowCount(), t.model.ColumnCount(), true
}

// Clear releases every internal table.
func (s *Source) Clear() {
	for _, name := range s.Names() {
		s.Remove(name)
	}
}

// Changed returns the signal emitting TableAdded, TableRemoved and Reset.
func (s *Source) Changed() *Signal {
	return &s.changed
}
