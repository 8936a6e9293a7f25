package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

func salesGrid() *table.Grid {
	return table.GridFromStrings([][]string{
		{"", "Q1", "Q2", "Q3"},
		{"North", "1", "2", "3"},
		{"South", "4", "5", "6"},
	})
}

func newProxy(t *testing.T, model table.Model, region string) (*Model, *table.Source) {
	t.Helper()
	src := table.NewSource()
	_, err := src.Add("Sheet1", model)
	require.NoError(t, err)
	m := New(src)
	t.Cleanup(m.Close)
	m.Reset(cellregion.MustParse(region))
	return m, src
}

type recorder struct {
	changes []table.Change
	counts  [][2]int
}

func record(m *Model) *recorder {
	r := &recorder{}
	m.Changed().Connect(func(c table.Change) {
		r.changes = append(r.changes, c)
		r.counts = append(r.counts, [2]int{m.RowCount(), m.ColumnCount()})
	})
	return r
}

func (r *recorder) kinds() []table.ChangeKind {
	out := make([]table.ChangeKind, len(r.changes))
	for i, c := range r.changes {
		out[i] = c.Kind
	}
	return out
}

func TestRowMajorFirstRowLabel(t *testing.T) {
	m, _ := newProxy(t, salesGrid(), "Sheet1.A1:D3")
	m.SetFirstRowIsLabel(true)

	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 4, m.ColumnCount())
	srow, scol, ok := m.MapToSource(0, 0)
	require.True(t, ok)
	assert.Equal(t, 1, srow)
	assert.Equal(t, 0, scol)

	_, _, ok = m.MapToSource(2, 0)
	assert.False(t, ok)
	_, _, ok = m.MapToSource(0, -1)
	assert.False(t, ok)
}

func TestLabelToggleNotifiesBeforeReads(t *testing.T) {
	m, _ := newProxy(t, salesGrid(), "Sheet1.A1:D3")
	rec := record(m)

	m.SetFirstColumnIsLabel(true)

	assert.Equal(t, 3, m.ColumnCount())
	require.Equal(t, []table.ChangeKind{table.ColumnsRemoved, table.DataChanged}, rec.kinds())
	assert.Equal(t, [2]int{3, 3}, rec.counts[0])
	assert.Equal(t, table.Change{Kind: table.DataChanged, ToRow: 2, ToCol: 2}, rec.changes[1])

	rec.changes = nil
	m.SetFirstColumnIsLabel(true)
	assert.Empty(t, rec.changes)

	m.SetFirstColumnIsLabel(false)
	assert.Equal(t, []table.ChangeKind{table.ColumnsInserted, table.DataChanged}, rec.kinds())
	assert.Equal(t, 4, m.ColumnCount())
}

func TestEmptySourceNeverNegative(t *testing.T) {
	m, src := newProxy(t, table.NewGrid(0, 3), "Sheet1.A1:C1")
	rec := record(m)

	m.SetFirstRowIsLabel(true)
	m.SetFirstColumnIsLabel(true)
	assert.Equal(t, 0, m.RowCount())
	assert.Equal(t, 0, m.ColumnCount())
	assert.Equal(t, []table.ChangeKind{table.Reset, table.Reset}, rec.kinds())

	_, err := src.Add("one", table.GridFromStrings([][]string{{"a", "b"}}))
	require.NoError(t, err)
	m.Reset(cellregion.MustParse("one.A1:B1"))
	assert.Equal(t, 0, m.RowCount())
	assert.Equal(t, 1, m.ColumnCount())
}

func TestDataDirectionResets(t *testing.T) {
	m, _ := newProxy(t, salesGrid(), "Sheet1.A1:D3")
	m.SetFirstRowIsLabel(true)
	m.SetFirstColumnIsLabel(true)
	rec := record(m)

	m.SetDataDirection(ColumnMajor)
	assert.Equal(t, []table.ChangeKind{table.Reset, table.DataChanged}, rec.kinds())
	assert.Equal(t, ColumnMajor, m.DataDirection())

	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, 2, m.ColumnCount())
	srow, scol, ok := m.MapToSource(2, 1)
	require.True(t, ok)
	assert.Equal(t, [2]int{2, 3}, [2]int{srow, scol})
	assert.Equal(t, 6.0, m.Data(2, 1).Num)

	assert.Equal(t, "Q3", m.HeaderData(2, Vertical).Text())
	assert.Equal(t, "South", m.HeaderData(1, Horizontal).Text())
}

func TestHeaderData(t *testing.T) {
	m, _ := newProxy(t, salesGrid(), "Sheet1.A1:D3")

	assert.True(t, m.HeaderData(0, Vertical).IsEmpty())
	assert.True(t, m.HeaderData(0, Horizontal).IsEmpty())

	m.SetFirstRowIsLabel(true)
	m.SetFirstColumnIsLabel(true)
	assert.Equal(t, "North", m.HeaderData(0, Vertical).Text())
	assert.Equal(t, "South", m.HeaderData(1, Vertical).Text())
	assert.True(t, m.HeaderData(2, Vertical).IsEmpty())
	assert.Equal(t, "Q1", m.HeaderData(0, Horizontal).Text())
	assert.Equal(t, "Q3", m.HeaderData(2, Horizontal).Text())
	assert.True(t, m.HeaderData(-1, Horizontal).IsEmpty())
}

func TestHeaderDataFollowsMapToSource(t *testing.T) {
	grid := salesGrid()
	tests := []struct {
		name     string
		dir      Direction
		rowLabel bool
		colLabel bool
	}{
		{"rows both labels", RowMajor, true, true},
		{"rows column label only", RowMajor, false, true},
		{"columns both labels", ColumnMajor, true, true},
		{"columns row label only", ColumnMajor, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newProxy(t, grid, "Sheet1.A1:D3")
			m.SetDataDirection(tt.dir)
			m.SetFirstRowIsLabel(tt.rowLabel)
			m.SetFirstColumnIsLabel(tt.colLabel)

			for row := 0; row < m.RowCount(); row++ {
				srow, scol, ok := m.MapToSource(row, 0)
				require.True(t, ok)
				want, labelled := grid.Cell(srow, 0), tt.colLabel
				if tt.dir == ColumnMajor {
					want, labelled = grid.Cell(0, scol), tt.rowLabel
				}
				if !labelled {
					want = models.Value{}
				}
				assert.Equal(t, want, m.HeaderData(row, Vertical), "series %d", row)
			}
			for col := 0; col < m.ColumnCount(); col++ {
				srow, scol, ok := m.MapToSource(0, col)
				require.True(t, ok)
				want, labelled := grid.Cell(0, scol), tt.rowLabel
				if tt.dir == ColumnMajor {
					want, labelled = grid.Cell(srow, 0), tt.colLabel
				}
				if !labelled {
					want = models.Value{}
				}
				assert.Equal(t, want, m.HeaderData(col, Horizontal), "category %d", col)
			}
		})
	}
}

func TestSubRegionOffsets(t *testing.T) {
	m, _ := newProxy(t, salesGrid(), "Sheet1.B2:D3")

	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())
	srow, scol, ok := m.MapToSource(1, 2)
	require.True(t, ok)
	assert.Equal(t, [2]int{2, 3}, [2]int{srow, scol})
	assert.Equal(t, 6.0, m.Data(1, 2).Num)

	r, ok := m.SourceRange()
	require.True(t, ok)
	assert.Equal(t, "Sheet1.B2:D3", r.String())
}

func TestSetDataWritesThrough(t *testing.T) {
	grid := salesGrid()
	m, _ := newProxy(t, grid, "Sheet1.A1:D3")
	m.SetFirstRowIsLabel(true)
	m.SetFirstColumnIsLabel(true)
	rec := record(m)

	require.NoError(t, m.SetData(1, 0, models.NumberValue(42)))
	assert.Equal(t, 42.0, grid.Cell(2, 1).Num)
	assert.Equal(t, []table.ChangeKind{table.DataChanged}, rec.kinds())

	assert.ErrorIs(t, m.SetData(5, 0, models.NumberValue(1)), table.ErrOutOfRange)
}

func TestRemovedTableReadsEmpty(t *testing.T) {
	grid := salesGrid()
	m, src := newProxy(t, grid, "Sheet1.A1:D3")
	rec := record(m)

	src.Remove("Sheet1")
	assert.Equal(t, 0, m.RowCount())
	assert.Equal(t, 0, m.ColumnCount())
	assert.True(t, m.Data(0, 0).IsEmpty())
	assert.Equal(t, []table.ChangeKind{table.Reset}, rec.kinds())

	_, err := src.Add("Sheet1", grid)
	require.NoError(t, err)
	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, "North", m.Data(1, 0).Text())
}

func TestUnresolvedRegionReadsEmpty(t *testing.T) {
	m, _ := newProxy(t, salesGrid(), "Sheet1.A1:Z9")
	assert.Equal(t, 0, m.RowCount())
	assert.True(t, m.Data(0, 0).IsEmpty())
	assert.True(t, m.HeaderData(0, Vertical).IsEmpty())
	_, ok := m.SourceRange()
	assert.False(t, ok)
}

func TestGridGrowthForwarded(t *testing.T) {
	grid := table.NewGrid(2, 2)
	m, _ := newProxy(t, grid, "Sheet1.A1:B3")
	assert.Equal(t, 0, m.RowCount())
	rec := record(m)

	require.NoError(t, grid.SetCell(2, 0, models.NumberValue(1)))
	assert.Equal(t, 3, m.RowCount())
	assert.Contains(t, rec.kinds(), table.Reset)

	m.Close()
	rec.changes = nil
	require.NoError(t, grid.SetCell(0, 0, models.NumberValue(2)))
	assert.Empty(t, rec.changes)
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, ColumnMajor, ParseDirection("columns"))
	assert.Equal(t, RowMajor, ParseDirection("rows"))
	assert.Equal(t, RowMajor, ParseDirection("bogus"))
	assert.Equal(t, "columns", ColumnMajor.String())
}
