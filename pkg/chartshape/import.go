package chartshape

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/parser"
	"github.com/ukaji3/chartshape-go/pkg/chartshape/proxy"
)

// Book is an imported workbook: its sheets, served as external tables, and
// the chart shapes built over them.
type Book struct {
	// Name is the file name without directory.
	Name     string
	Workbook *parser.Workbook
	Shapes   []*Shape
	// Errors lists charts that could not be imported.
	Errors []*LoadError
}

// Import reads the xlsx file at path and builds one shape per chart found
// in its drawings. Depending on opts, sheets without a chart get a default
// chart over their print area or first detected table.
func Import(path string, opts Options) (*Book, error) {
	wb, err := parser.OpenWorkbook(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	opts.Sheets = wb

	charts, err := parser.ExtractCharts(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("chart parts unreadable")
	}
	printAreas := parser.ExtractPrintAreas(wb.File())

	book := &Book{Name: filepath.Base(path), Workbook: wb}
	for _, sheet := range wb.SheetNames() {
		for _, c := range charts[sheet] {
			s, err := shapeFromChart(c, opts)
			if err != nil {
				book.fail(opts, sheet+"/"+c.Name, err)
				continue
			}
			book.add(s)
		}
		if len(charts[sheet]) > 0 || !opts.ShouldCreateDefaultCharts() {
			continue
		}
		s, err := defaultSheetChart(wb, sheet, printAreas[sheet], opts)
		if err != nil {
			book.fail(opts, sheet, err)
			continue
		}
		if s != nil {
			book.add(s)
		}
	}
	log.Debug().Str("book", book.Name).Int("shapes", len(book.Shapes)).Int("errors", len(book.Errors)).Msg("workbook imported")
	return book, nil
}

func (b *Book) add(s *Shape) {
	s.SetZIndex(len(b.Shapes))
	b.Shapes = append(b.Shapes, s)
}

func (b *Book) fail(opts Options, object string, err error) {
	le := NewLoadError(object, "chart", err)
	opts.Interaction.Report(le)
	b.Errors = append(b.Errors, le)
}

// WritePackage stores the book's shapes as a chart package.
func (b *Book) WritePackage(w io.Writer) error {
	return WritePackage(w, b.Shapes...)
}

// Close releases the shapes and the workbook.
func (b *Book) Close() error {
	for _, s := range b.Shapes {
		s.Close()
	}
	b.Shapes = nil
	return b.Workbook.Close()
}

// shapeFromChart builds a shape showing the ranges of an imported chart.
func shapeFromChart(c models.Chart, opts Options) (*Shape, error) {
	region, dir, err := seriesRegion(c.Series)
	if err != nil {
		return nil, err
	}
	s := NewShape(opts)
	s.Name = c.Name
	s.SetChartType(c.ChartType)
	if c.Subtype != models.NoChartSubtype {
		s.SetChartSubtype(c.Subtype)
	}
	s.SetThreeD(c.ThreeD)
	if err := s.Reset(region.String(), false, false, dir); err != nil {
		s.Close()
		return nil, err
	}

	for i, series := range c.Series {
		ds := s.PlotArea().DataSet(i)
		if ds == nil {
			log.Debug().Str("chart", c.Name).Int("series", i).Msg("series has no data set")
			continue
		}
		if g, ok := excelRegion(series.YRange); ok {
			ds.SetYDataRegion(g)
		}
		if g, ok := excelRegion(series.NameRange); ok {
			ds.SetLabelRegion(g)
		}
		if g, ok := excelRegion(series.XRange); ok {
			if c.ChartType.Dimensions() > 1 {
				ds.SetXDataRegion(g)
			} else {
				ds.SetCategoryRegion(g)
			}
		}
		if series.Color != "" {
			if col, err := colorful.Hex(series.Color); err == nil {
				ds.SetColor(col)
			}
		}
		if series.ChartType != c.ChartType {
			// Rejections are logged by the plot area.
			_ = s.PlotArea().SetDataSetChartType(ds, series.ChartType)
		}
	}

	if c.Title != "" {
		s.Title.Text = c.Title
		s.ShowTitle(true)
	}
	if ax := s.PlotArea().XAxis(); ax != nil {
		ax.Title = c.XAxisTitle
	}
	if ax := s.PlotArea().YAxis(); ax != nil {
		ax.Title = c.YAxisTitle
		if len(c.YAxisRange) == 2 {
			ax.SetRange(c.YAxisRange[0], c.YAxisRange[1])
		}
	}
	s.SetPosition(parser.PixelsToCentimetres(c.L), parser.PixelsToCentimetres(c.T))
	if c.W != nil && c.H != nil {
		s.SetSize(parser.PixelsToCentimetres(*c.W), parser.PixelsToCentimetres(*c.H))
	}
	return s, nil
}

// seriesRegion joins the Y ranges of all series. Series laid out in
// columns make the proxy read column by column.
func seriesRegion(series []models.ChartSeries) (cellregion.Region, proxy.Direction, error) {
	var ranges []cellregion.Range
	for _, s := range series {
		if s.YRange == "" {
			continue
		}
		g, err := cellregion.FromExcelReference(s.YRange)
		if err != nil {
			return cellregion.Region{}, proxy.RowMajor, fmt.Errorf("series values %q: %w", s.YRange, err)
		}
		ranges = append(ranges, g.Ranges()...)
	}
	if len(ranges) == 0 {
		return cellregion.Region{}, proxy.RowMajor, fmt.Errorf("%w: chart has no series data", ErrInvalidFormat)
	}
	dir := proxy.RowMajor
	if first := ranges[0]; first.Columns() == 1 && first.Rows() > 1 {
		dir = proxy.ColumnMajor
	}
	return cellregion.New(ranges...), dir, nil
}

func excelRegion(ref string) (cellregion.Region, bool) {
	if ref == "" {
		return cellregion.Region{}, false
	}
	g, err := cellregion.FromExcelReference(ref)
	if err != nil {
		log.Debug().Err(err).Str("ref", ref).Msg("series range skipped")
		return cellregion.Region{}, false
	}
	return g, true
}

// defaultSheetChart returns a chart over the print area of sheet, or over
// its first table-like block. It returns nil when the sheet has neither.
func defaultSheetChart(wb *parser.Workbook, sheet string, printArea cellregion.Region, opts Options) (*Shape, error) {
	region := printArea
	if region.IsEmpty() {
		m, ok := wb.Sheet(sheet)
		if !ok {
			return nil, nil
		}
		blocks := parser.DetectTables(m, sheet, parser.DefaultTableParams())
		if len(blocks) == 0 {
			return nil, nil
		}
		region = cellregion.New(blocks[0])
	}
	s := NewShape(opts)
	s.Name = sheet
	if err := s.Reset(region.String(), opts.FirstRowIsLabel, opts.FirstColumnIsLabel, opts.Direction); err != nil {
		s.Close()
		return nil, err
	}
	s.Title.Text = sheet
	s.ShowTitle(true)
	return s, nil
}
