package parser

import (
	"archive/zip"
	"encoding/xml"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

// ChartKind is the chart family and 3D flag of an OOXML plot group.
type ChartKind struct {
	Type   models.ChartType
	ThreeD bool
}

// ChartTypeMap maps OOXML plot group tags to chart kinds.
var ChartTypeMap = map[string]ChartKind{
	"barChart":       {models.BarChartType, false},
	"bar3DChart":     {models.BarChartType, true},
	"lineChart":      {models.LineChartType, false},
	"line3DChart":    {models.LineChartType, true},
	"areaChart":      {models.AreaChartType, false},
	"area3DChart":    {models.AreaChartType, true},
	"pieChart":       {models.CircleChartType, false},
	"pie3DChart":     {models.CircleChartType, true},
	"ofPieChart":     {models.CircleChartType, false},
	"doughnutChart":  {models.RingChartType, false},
	"scatterChart":   {models.ScatterChartType, false},
	"bubbleChart":    {models.BubbleChartType, false},
	"radarChart":     {models.RadarChartType, false},
	"surfaceChart":   {models.SurfaceChartType, false},
	"surface3DChart": {models.SurfaceChartType, true},
	"stockChart":     {models.StockChartType, false},
}

// groupings maps c:grouping values to subtypes.
var groupings = map[string]models.ChartSubtype{
	"standard":       models.NormalChartSubtype,
	"clustered":      models.NormalChartSubtype,
	"stacked":        models.StackedChartSubtype,
	"percentStacked": models.PercentChartSubtype,
}

// chartAnchor is a chart frame found in a drawing part.
type chartAnchor struct {
	name   string
	relID  string
	left   int
	top    int
	width  int
	height int
}

// ExtractCharts reads the charts of every sheet of an xlsx file, keyed by
// sheet name, in drawing order. Charts that cannot be read are skipped.
func ExtractCharts(xlsxPath string) (map[string][]models.Chart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheets, err := workbookSheets(&r.Reader)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Chart)
	for _, sheet := range sheets {
		rels, err := readRels(&r.Reader, sheet.Path)
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheet.Name).Msg("sheet relationships unreadable")
			continue
		}
		for _, rel := range rels {
			if !isRelType(rel, "drawing") {
				continue
			}
			charts := readDrawingCharts(&r.Reader, resolveTarget(sheet.Path, rel.Target))
			result[sheet.Name] = append(result[sheet.Name], charts...)
		}
	}
	return result, nil
}

// readDrawingCharts parses the charts anchored in one drawing part.
func readDrawingCharts(r *zip.Reader, drawingPath string) []models.Chart {
	data, err := readPart(r, drawingPath)
	if err != nil || data == nil {
		return nil
	}
	anchors := parseDrawingAnchors(data)
	if len(anchors) == 0 {
		return nil
	}
	rels, err := readRels(r, drawingPath)
	if err != nil {
		return nil
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if isRelType(rel, "chart") {
			targets[rel.ID] = resolveTarget(drawingPath, rel.Target)
		}
	}

	var charts []models.Chart
	for _, a := range anchors {
		chartPath, ok := targets[a.relID]
		if !ok {
			continue
		}
		chartXML, err := readPart(r, chartPath)
		if err != nil || chartXML == nil {
			log.Debug().Str("part", chartPath).Msg("chart part missing")
			continue
		}
		chart := parseChartXML(chartXML)
		chart.Name = a.name
		chart.L, chart.T = a.left, a.top
		w, h := a.width, a.height
		chart.W, chart.H = &w, &h
		charts = append(charts, chart)
	}
	return charts
}

// parseDrawingAnchors returns the graphic frames that hold a chart.
func parseDrawingAnchors(data []byte) []chartAnchor {
	var anchors []chartAnchor
	eachStart(data, func(decoder *xml.Decoder, se xml.StartElement) {
		if se.Name.Local != "graphicFrame" {
			return
		}
		var a chartAnchor
		walkSubtree(decoder, func(se xml.StartElement) bool {
			switch se.Name.Local {
			case "cNvPr":
				a.name = attrValue(se, "name")
			case "xfrm":
				a.left, a.top, a.width, a.height = parseXfrm(decoder)
				return true
			case "chart":
				a.relID = attrValue(se, "id")
			}
			return false
		})
		if a.relID != "" {
			anchors = append(anchors, a)
		}
	})
	return anchors
}

// parseChartXML reads a chart part. The first plot group decides the
// chart type; series of later groups keep their own type.
func parseChartXML(data []byte) models.Chart {
	chart := models.Chart{ChartType: models.NoChartType}
	eachStart(data, func(decoder *xml.Decoder, se xml.StartElement) {
		if se.Name.Local != "chart" {
			return
		}
		walkSubtree(decoder, func(se xml.StartElement) bool {
			switch se.Name.Local {
			case "title":
				chart.Title = parseRichText(decoder)
				return true
			case "plotArea":
				parsePlotArea(decoder, &chart)
				return true
			case "legend":
				skipSubtree(decoder)
				return true
			}
			return false
		})
	})
	if chart.ChartType == models.NoChartType {
		chart.ChartType = models.BarChartType
	}
	return chart
}

func parsePlotArea(decoder *xml.Decoder, chart *models.Chart) {
	walkSubtree(decoder, func(se xml.StartElement) bool {
		if kind, ok := ChartTypeMap[se.Name.Local]; ok {
			subtype, series := parsePlotGroup(decoder, kind.Type)
			if chart.ChartType == models.NoChartType {
				chart.ChartType = kind.Type
				chart.ThreeD = kind.ThreeD
				chart.Subtype = subtype
			}
			chart.Series = append(chart.Series, series...)
			return true
		}
		switch se.Name.Local {
		case "valAx":
			title, min, max := parseAxis(decoder)
			if chart.YAxisTitle == "" {
				chart.YAxisTitle = title
			}
			if min != nil && max != nil && chart.YAxisRange == nil {
				chart.YAxisRange = []float64{*min, *max}
			}
			return true
		case "catAx", "dateAx":
			title, _, _ := parseAxis(decoder)
			chart.XAxisTitle = title
			return true
		}
		return false
	})
}

// parsePlotGroup reads one c:barChart, c:lineChart, ... element.
func parsePlotGroup(decoder *xml.Decoder, t models.ChartType) (models.ChartSubtype, []models.ChartSeries) {
	subtype := models.NoChartSubtype
	if t.HasSubtypes() {
		subtype = models.NormalChartSubtype
	}
	var series []models.ChartSeries
	walkSubtree(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "grouping":
			if st, ok := groupings[attrValue(se, "val")]; ok && t.HasSubtypes() {
				subtype = st
			}
		case "ser":
			s := parseSeries(decoder)
			s.ChartType = t
			series = append(series, s)
			return true
		}
		return false
	})
	return subtype, series
}

func parseSeries(decoder *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
	walkSubtree(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "tx":
			s.Name, s.NameRange = parseSeriesText(decoder)
			return true
		case "cat", "xVal":
			s.XRange = parseFormula(decoder)
			return true
		case "val", "yVal":
			s.YRange = parseFormula(decoder)
			return true
		case "spPr":
			s.Color = parseFillColor(decoder)
			return true
		case "dPt", "marker", "dLbls", "trendline", "errBars", "bubbleSize":
			skipSubtree(decoder)
			return true
		}
		return false
	})
	return s
}

// parseSeriesText reads a c:tx element: a formula, a cached value or both.
func parseSeriesText(decoder *xml.Decoder) (name, ref string) {
	walkSubtree(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "f":
			ref = readElementText(decoder)
			return true
		case "v":
			name = readElementText(decoder)
			return true
		}
		return false
	})
	return
}

// parseFormula returns the first c:f below the current element.
func parseFormula(decoder *xml.Decoder) string {
	var f string
	walkSubtree(decoder, func(se xml.StartElement) bool {
		if se.Name.Local == "f" && f == "" {
			f = readElementText(decoder)
			return true
		}
		return false
	})
	return f
}

// parseFillColor returns the solid fill of a c:spPr as "#rrggbb". Line
// colours are ignored.
func parseFillColor(decoder *xml.Decoder) string {
	var color string
	walkSubtree(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "ln":
			skipSubtree(decoder)
			return true
		case "srgbClr":
			if color == "" {
				if v := attrValue(se, "val"); len(v) == 6 {
					color = "#" + v
				}
			}
		}
		return false
	})
	return color
}

// parseRichText joins the a:t runs of a title.
func parseRichText(decoder *xml.Decoder) string {
	var text string
	walkSubtree(decoder, func(se xml.StartElement) bool {
		if se.Name.Local == "t" {
			text += readElementText(decoder)
			return true
		}
		return false
	})
	return text
}

// parseAxis reads the title and fixed scaling of an axis.
func parseAxis(decoder *xml.Decoder) (title string, min, max *float64) {
	walkSubtree(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "title":
			title = parseRichText(decoder)
			return true
		case "min", "max":
			v, err := strconv.ParseFloat(attrValue(se, "val"), 64)
			if err != nil {
				return false
			}
			if se.Name.Local == "min" {
				min = &v
			} else {
				max = &v
			}
		}
		return false
	})
	return
}
