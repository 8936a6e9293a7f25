package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

type fakeSheets map[string]Model

func (f fakeSheets) SheetNames() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names
}

func (f fakeSheets) Sheet(name string) (Model, bool) {
	m, ok := f[name]
	return m, ok
}

func TestSourceAddCollision(t *testing.T) {
	src := NewSource()
	first := NewGrid(2, 2)
	_, err := src.Add("T1", first)
	require.NoError(t, err)

	_, err = src.Add("T1", NewGrid(3, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameCollision))

	got := src.Get("T1")
	require.NotNil(t, got)
	assert.Same(t, first, got.Model())
}

func TestSourceAddInvalid(t *testing.T) {
	src := NewSource()
	_, err := src.Add("", NewGrid(1, 1))
	assert.ErrorIs(t, err, ErrInvalidTable)
	_, err = src.Add("x", nil)
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestSourceRemove(t *testing.T) {
	src := NewSource()
	g := NewGrid(1, 1)
	_, err := src.Add("T1", g)
	require.NoError(t, err)

	removed := src.Remove("T1")
	require.NotNil(t, removed)
	assert.Same(t, g, removed.Model())
	assert.Nil(t, src.Get("T1"))
	assert.Nil(t, src.Remove("T1"))

	_, _, ok := src.Extent("T1")
	assert.False(t, ok)
}

func TestSourceSignals(t *testing.T) {
	src := NewSource()
	var got []Change
	disconnect := src.Changed().Connect(func(c Change) { got = append(got, c) })

	_, err := src.Add("T1", NewGrid(1, 1))
	require.NoError(t, err)
	src.Remove("T1")
	disconnect()
	_, err = src.Add("T2", NewGrid(1, 1))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, Change{Kind: TableAdded, Table: "T1"}, got[0])
	assert.Equal(t, Change{Kind: TableRemoved, Table: "T1"}, got[1])
}

func TestSourceSheetAccess(t *testing.T) {
	src := NewSource()
	sheetGrid := GridFromStrings([][]string{{"a", "1"}})
	src.SetSheetAccessModel(fakeSheets{"Sheet1": sheetGrid})

	ext := src.Get("Sheet1")
	require.NotNil(t, ext)
	assert.True(t, ext.External())
	assert.Same(t, ext, src.Get("Sheet1"))
	assert.Same(t, ext, src.GetByModel(sheetGrid))

	internal := NewGrid(5, 5)
	_, err := src.Add("Sheet1", internal)
	require.NoError(t, err)
	assert.Same(t, internal, src.Get("Sheet1").Model())

	src.Remove("Sheet1")
	assert.Same(t, sheetGrid, src.Get("Sheet1").Model())
	assert.Nil(t, src.Get("Missing"))
}

func TestSourceNamesAndUniqueName(t *testing.T) {
	src := NewSource()
	_, err := src.Add("local-table", NewGrid(1, 1))
	require.NoError(t, err)
	_, err = src.Add("b", NewGrid(1, 1))
	require.NoError(t, err)
	src.SetSheetAccessModel(fakeSheets{"b": NewGrid(1, 1)})

	assert.Equal(t, []string{"b", "local-table"}, src.Names())
	assert.Equal(t, "local-table-1", src.UniqueName("local-table"))
	assert.Equal(t, "c", src.UniqueName("c"))
	assert.Equal(t, "local-table-1", src.UniqueName(""))

	src.Clear()
	assert.Empty(t, src.Tables())
}

func TestGridGrowsAndNotifies(t *testing.T) {
	g := NewGrid(0, 0)
	var kinds []ChangeKind
	g.Changed().Connect(func(c Change) { kinds = append(kinds, c.Kind) })

	require.NoError(t, g.SetCell(1, 2, models.NumberValue(4.5)))
	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, 3, g.ColumnCount())
	assert.Equal(t, []ChangeKind{ColumnsInserted, RowsInserted, DataChanged}, kinds)

	v, ok := g.Cell(1, 2).Float()
	require.True(t, ok)
	assert.Equal(t, 4.5, v)
	assert.True(t, g.Cell(9, 9).IsEmpty())
	assert.ErrorIs(t, g.SetCell(-1, 0, models.Value{}), ErrOutOfRange)

	g.Resize(1, 1)
	assert.Equal(t, 1, g.RowCount())
	assert.Equal(t, Reset, kinds[len(kinds)-1])
}

func TestSignalDisconnectDuringEmit(t *testing.T) {
	var s Signal
	calls := 0
	var disconnect func()
	disconnect = s.Connect(func(Change) {
		calls++
		disconnect()
	})
	s.Connect(func(Change) { calls++ })

	s.Emit(Change{})
	s.Emit(Change{})
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, s.Len())
}
