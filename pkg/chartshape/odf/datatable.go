package odf

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// ErrNotATable is returned by DecodeTable for elements other than table:table.
var ErrNotATable = errors.New("element is not a table:table")

// maxRepeat bounds number-rows-repeated and number-columns-repeated.
const maxRepeat = 1 << 14

// maxCells bounds the size of a decoded table.
const maxCells = 1 << 20

// ErrTableTooLarge is returned by DecodeTable when the expanded table would
// hold more than maxCells cells.
var ErrTableTooLarge = errors.New("data table too large")

// dateLayouts are accepted for office:date-value, most precise first.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"}

// EncodeTable writes model as a table:table. The first row is written as
// the header row and the first column is declared as header column.
func EncodeTable(w *Writer, name string, model table.Model) {
	rows, cols := model.RowCount(), model.ColumnCount()

	w.Start("table:table", Attr{Name: "table:name", Value: name})
	if cols > 0 {
		w.Start("table:table-header-columns")
		w.Leaf("table:table-column")
		w.End("table:table-header-columns")
	}
	if cols > 1 {
		w.Start("table:table-columns")
		w.Leaf("table:table-column", Attr{Name: "table:number-columns-repeated", Value: strconv.Itoa(cols - 1)})
		w.End("table:table-columns")
	}
	if rows > 0 {
		w.Start("table:table-header-rows")
		encodeRow(w, model, 0, cols)
		w.End("table:table-header-rows")
	}
	if rows > 1 {
		w.Start("table:table-rows")
		for r := 1; r < rows; r++ {
			encodeRow(w, model, r, cols)
		}
		w.End("table:table-rows")
	}
	w.End("table:table")
}

func encodeRow(w *Writer, model table.Model, row, cols int) {
	w.Start("table:table-row")
	for c := 0; c < cols; c++ {
		encodeCell(w, model.Cell(row, c))
	}
	w.End("table:table-row")
}

func encodeCell(w *Writer, v models.Value) {
	const name = "table:table-cell"
	typ := Attr{Name: "office:value-type", Value: v.Kind.String()}
	switch v.Kind {
	case models.KindEmpty:
		w.Leaf(name)
		return
	case models.KindString:
		w.Start(name, typ)
	case models.KindNumber:
		w.Start(name, typ, Attr{Name: "office:value", Value: FormatFloat(v.Num)})
	case models.KindBool:
		w.Start(name, typ, Attr{Name: "office:boolean-value", Value: strconv.FormatBool(v.Bool)})
	case models.KindDateTime:
		w.Start(name, typ, Attr{Name: "office:date-value", Value: v.Time.Format(time.RFC3339Nano)})
	}
	w.Paragraphs(v.Text())
	w.End(name)
}

// DecodeTable reads a table:table element into a new grid and returns it
// with the table name. Repeated rows and cells are expanded; empty cells
// keep their positions, but repeated empty cells at the end of a row and
// repeated empty rows at the end of the table are dropped. Column
// declarations are ignored, the widest row decides the column count. Tables
// of more than maxCells cells or rows fail with ErrTableTooLarge.
func DecodeTable(el *Element) (*table.Grid, string, error) {
	if el == nil || el.Name != "table:table" {
		return nil, "", ErrNotATable
	}
	name := el.AttrOr("table:name", "")

	var runs []rowRun
	var walk func(*Element)
	walk = func(e *Element) {
		for _, c := range e.Children {
			switch c.Name {
			case "table:table-row":
				runs = append(runs, rowRun{cells: decodeRow(c), count: repeat(c, "table:number-rows-repeated")})
			case "table:table-header-rows", "table:table-rows", "table:table-row-group":
				walk(c)
			}
		}
	}
	walk(el)

	for len(runs) > 0 && runs[len(runs)-1].count > 1 && runs[len(runs)-1].isEmpty() {
		runs = runs[:len(runs)-1]
	}
	rowCount, width := 0, 0
	for _, run := range runs {
		rowCount += run.count
		width = max(width, run.width())
	}
	if rowCount > maxCells || width > maxCells || (width > 0 && rowCount > maxCells/width) {
		return nil, "", fmt.Errorf("%w: %d x %d cells", ErrTableTooLarge, rowCount, width)
	}

	rows := make([][]models.Value, 0, rowCount)
	for _, run := range runs {
		row := run.expand()
		for n := run.count; n > 0; n-- {
			rows = append(rows, row)
		}
	}
	return table.GridFromRows(rows), name, nil
}

// cellRun is one table:table-cell with its column repeat.
type cellRun struct {
	value models.Value
	count int
}

// rowRun is one table:table-row with its row repeat.
type rowRun struct {
	cells []cellRun
	count int
}

func (r rowRun) width() int {
	n := 0
	for _, c := range r.cells {
		n += c.count
	}
	return n
}

func (r rowRun) isEmpty() bool {
	for _, c := range r.cells {
		if !c.value.IsEmpty() {
			return false
		}
	}
	return true
}

func (r rowRun) expand() []models.Value {
	row := make([]models.Value, 0, r.width())
	for _, c := range r.cells {
		for n := c.count; n > 0; n-- {
			row = append(row, c.value)
		}
	}
	return row
}

// decodeRow returns the cell runs of a row without trailing runs of
// repeated empty cells.
func decodeRow(el *Element) []cellRun {
	var cells []cellRun
	for _, c := range el.Children {
		if c.Name != "table:table-cell" && c.Name != "table:covered-table-cell" {
			continue
		}
		cells = append(cells, cellRun{value: decodeCell(c), count: repeat(c, "table:number-columns-repeated")})
	}
	for len(cells) > 0 && cells[len(cells)-1].count > 1 && cells[len(cells)-1].value.IsEmpty() {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func decodeCell(el *Element) models.Value {
	text := el.Paragraphs()
	switch el.AttrOr("office:value-type", "") {
	case "float", "percentage", "currency":
		if s, ok := el.Attr("office:value"); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return models.NumberValue(f)
			}
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return models.NumberValue(f)
		}
		log.Debug().Str("text", text).Msg("float cell without a number")
		return models.StringValue(text)
	case "boolean":
		if b, err := strconv.ParseBool(el.AttrOr("office:boolean-value", text)); err == nil {
			return models.BoolValue(b)
		}
		return models.StringValue(text)
	case "date":
		s := el.AttrOr("office:date-value", "")
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return models.DateValue(t)
			}
		}
		if text == "" {
			return models.Value{}
		}
		return models.StringValue(text)
	case "string":
		return models.StringValue(text)
	}
	if text == "" {
		return models.Value{}
	}
	return models.StringValue(text)
}

func repeat(el *Element, attr string) int {
	s, ok := el.Attr(attr)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	if n > maxRepeat {
		log.Debug().Str("attr", attr).Int("repeat", n).Msg("repeat count capped")
		return maxRepeat
	}
	return n
}
