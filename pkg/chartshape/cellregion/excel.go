package cellregion

import (
	"fmt"
	"strings"
)

// FromExcelReference converts a spreadsheet formula reference such as
// "'Sheet 1'!$A$1:$D$10,Sheet2!B3" into a region. Surrounding parentheses
// of multi-area references are accepted.
func FromExcelReference(ref string) (Region, error) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimSuffix(strings.TrimPrefix(ref, "("), ")")

	var ranges []Range
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			return Region{}, newParseError(part, fmt.Errorf("%w: missing sheet name", ErrInvalidFormat))
		}
		sheet := strings.TrimPrefix(part[:idx], "=")
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		if sheet == "" {
			return Region{}, newParseError(part, fmt.Errorf("%w: missing sheet name", ErrInvalidFormat))
		}

		cells := strings.Split(part[idx+1:], ":")
		if len(cells) > 2 {
			return Region{}, newParseError(part, ErrInvalidFormat)
		}
		row, col, err := parseCell(cells[0])
		if err != nil {
			return Region{}, newParseError(part, err)
		}
		if len(cells) == 1 {
			ranges = append(ranges, Cell(sheet, row, col))
			continue
		}
		endRow, endCol, err := parseCell(cells[1])
		if err != nil {
			return Region{}, newParseError(part, err)
		}
		ranges = append(ranges, NewRange(sheet, row, col, endRow, endCol))
	}
	if len(ranges) == 0 {
		return Region{}, newParseError(ref, ErrInvalidFormat)
	}
	return Region{ranges: ranges}, nil
}

// ExcelReference formats the region as an absolute spreadsheet reference.
func (g Region) ExcelReference() string {
	parts := make([]string, len(g.ranges))
	for i, r := range g.ranges {
		sheet := r.Table
		if quoteTable(sheet) != sheet {
			sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
		}
		ref := sheet + "!" + cellName(r.StartRow, r.StartCol, true)
		if !r.IsCell() {
			ref += ":" + cellName(r.EndRow, r.EndCol, true)
		}
		parts[i] = ref
	}
	return strings.Join(parts, ",")
}
