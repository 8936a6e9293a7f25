package parser

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/cellregion"
)

// ExtractPrintAreas returns the print area of each sheet that defines one,
// keyed by sheet name. The ranges name their sheet as table.
func ExtractPrintAreas(f *excelize.File) map[string]cellregion.Region {
	result := make(map[string]cellregion.Region)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		region, err := cellregion.FromExcelReference(dn.RefersTo)
		if err != nil {
			log.Debug().Err(err).Str("ref", dn.RefersTo).Msg("print area skipped")
			continue
		}
		sheet := region.Table()
		if sheet == "" {
			continue
		}
		if prev, ok := result[sheet]; ok {
			region = cellregion.New(append(prev.Ranges(), region.Ranges()...)...)
		}
		result[sheet] = region
	}
	return result
}
