package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

func TestDetectTables(t *testing.T) {
	grid := table.GridFromStrings([][]string{
		{"", "Q1", "Q2"},
		{"North", "1", "2"},
		{"South", "3", "4"},
		{},
		{"note"},
		{},
		{"", "", "", "x", "y"},
		{"", "", "", "1", "2"},
	})

	got := DetectTables(grid, "Sheet1", DefaultTableParams())

	assert.Equal(t, []cellregion.Range{
		cellregion.NewRange("Sheet1", 0, 0, 2, 2),
		cellregion.NewRange("Sheet1", 6, 3, 7, 4),
	}, got)
}

func TestDetectTablesThresholds(t *testing.T) {
	grid := table.GridFromStrings([][]string{
		{"a", "", "", "", "", "", "", "", "", "b"},
		{"c", "", "", "", "", "", "", "", "", ""},
	})

	params := DefaultTableParams()
	assert.Len(t, DetectTables(grid, "s", params), 1)

	params.CoverageMin = 0.5
	assert.Empty(t, DetectTables(grid, "s", params))

	params = DefaultTableParams()
	params.MinNonemptyCells = 4
	assert.Empty(t, DetectTables(grid, "s", params))

	params = DefaultTableParams()
	params.DensityMin = 0.5
	assert.Empty(t, DetectTables(grid, "s", params))
}

func TestDetectTablesEmpty(t *testing.T) {
	assert.Empty(t, DetectTables(table.NewGrid(0, 0), "s", DefaultTableParams()))
	assert.Empty(t, DetectTables(table.NewGrid(3, 3), "s", DefaultTableParams()))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, 96, EMUToPixels(914400))
	assert.InDelta(t, 2.54, EMUToCentimetres(914400), 1e-9)
	assert.InDelta(t, 2.54, PixelsToCentimetres(96), 1e-9)
}
