package chartshape

import (
	"strconv"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/table"
)

// Describe returns the JSON view of s. With includeTables the contents of
// every table the chart reads from are included.
func Describe(s *Shape, includeTables bool) models.ShapeData {
	area := s.PlotArea()
	d := models.ShapeData{
		ID:        s.ID().String(),
		Name:      s.Name,
		ChartType: s.ChartType().String(),
		Subtype:   s.ChartSubtype().String(),
		ThreeD:    s.IsThreeD(),
		Legend:    s.Legend().Position.String(),
		Region:    s.Proxy().Region().String(),
		Direction: s.Proxy().DataDirection().String(),
	}
	d.L, d.T = s.Position()
	d.W, d.H = s.Size()
	if s.Title.Visible {
		d.Title = s.Title.Text
	}
	if s.Subtitle.Visible {
		d.Subtitle = s.Subtitle.Text
	}
	if s.Footer.Visible {
		d.Footer = s.Footer.Text
	}

	for _, ax := range area.Axes() {
		d.Axes = append(d.Axes, models.AxisData{
			Dimension: ax.Dimension.String(),
			Name:      ax.Name,
			Title:     ax.Title,
			Visible:   ax.Visible,
		})
	}

	d.Series = []models.SeriesData{}
	for _, ds := range area.DataSets() {
		sd := models.SeriesData{
			Label:      ds.Label(),
			Color:      ds.Color().Hex(),
			Values:     ds.Values(),
			Categories: ds.Categories(),
			XValues:    ds.XValues(),
			ShowValues: ds.ShowValues,
			ShowLabels: ds.ShowLabels,
		}
		if t := ds.ChartType(); t != models.NoChartType {
			sd.ChartType = t.String()
		}
		if st := ds.Subtype(); st != models.NoChartSubtype {
			sd.Subtype = st.String()
		}
		d.Series = append(d.Series, sd)
	}

	if includeTables {
		d.Tables = describeTables(s)
	}
	return d
}

// describeTables lists the internal tables and the external tables named
// by the data range.
func describeTables(s *Shape) []models.TableData {
	src := s.TableSource()
	var out []models.TableData
	seen := make(map[string]bool)
	add := func(t *table.Table) {
		if t == nil || seen[t.Name()] {
			return
		}
		seen[t.Name()] = true
		m := t.Model()
		out = append(out, models.TableData{
			Name:        t.Name(),
			External:    t.External(),
			RowCount:    m.RowCount(),
			ColumnCount: m.ColumnCount(),
			Rows:        tableRows(m),
		})
	}
	for _, t := range src.Tables() {
		add(t)
	}
	for _, name := range s.Proxy().Region().Tables() {
		add(src.Get(name))
	}
	return out
}

// tableRows returns the non-empty rows of m. Rows and columns are 1-based
// and columns are keyed by their number as text.
func tableRows(m table.Model) []models.CellRow {
	var rows []models.CellRow
	for r := 0; r < m.RowCount(); r++ {
		cells := make(map[string]interface{})
		for c := 0; c < m.ColumnCount(); c++ {
			v := m.Cell(r, c)
			if v.IsEmpty() {
				continue
			}
			cells[strconv.Itoa(c+1)] = v.Interface()
		}
		if len(cells) > 0 {
			rows = append(rows, models.CellRow{R: r + 1, C: cells})
		}
	}
	return rows
}

// NewDocument collects the JSON view of shapes read from source.
func NewDocument(source string, shapes []*Shape, failures []*LoadError, includeTables bool) models.Document {
	doc := models.Document{Source: source, Shapes: []models.ShapeData{}}
	for _, s := range shapes {
		doc.Shapes = append(doc.Shapes, Describe(s, includeTables))
	}
	for _, le := range failures {
		doc.Errors = append(doc.Errors, le.Error())
	}
	return doc
}
