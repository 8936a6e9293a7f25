package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/output"
)

func writeBook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"", "Q1", "Q2", "Q3"},
		{"North", 1, 2, 3},
		{"South", 4, 5, 6},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log.level", "none"))
	err := cmd.Execute()
	return out.String(), err
}

func TestInspectWorkbook(t *testing.T) {
	out, err := execute(t, "inspect", writeBook(t))
	require.NoError(t, err)

	doc, err := output.ReadDocument(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", doc.Source)
	require.Len(t, doc.Shapes, 1)
	assert.Equal(t, "Sheet1.A1:D3", doc.Shapes[0].Region)
	assert.Len(t, doc.Shapes[0].Series, 2)
}

func TestImportThenRender(t *testing.T) {
	book := writeBook(t)
	pkg := filepath.Join(t.TempDir(), "charts.odg")
	_, err := execute(t, "import", book, "-o", pkg)
	require.NoError(t, err)
	require.FileExists(t, pkg)

	image := filepath.Join(t.TempDir(), "chart.svg")
	_, err = execute(t, "render", pkg, "--workbook", book, "-o", image)
	require.NoError(t, err)
	data, err := os.ReadFile(image)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = execute(t, "render", pkg, "--workbook", book, "--index", "3")
	assert.Error(t, err)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "none.odg"))
	assert.Error(t, err)
}
