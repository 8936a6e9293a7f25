package cellregion

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parse reads a region such as "Sheet1.A1:B10;Sheet1.D1". Ranges may be
// separated by ';', ',' or whitespace. Table names containing separators
// are written in single quotes, doubling embedded quotes. '$' markers are
// accepted and dropped.
//
// If src is non-nil every table must resolve through it, otherwise the
// error wraps ErrUnknownTable. Tables are not otherwise required to exist:
// consumers resolve regions lazily.
func Parse(text string, src Resolver) (Region, error) {
	tokens, err := splitTokens(text)
	if err != nil {
		return Region{}, err
	}
	if len(tokens) == 0 {
		return Region{}, newParseError(text, ErrInvalidFormat)
	}
	ranges := make([]Range, 0, len(tokens))
	for _, tok := range tokens {
		r, err := parseRange(tok)
		if err != nil {
			return Region{}, err
		}
		if src != nil {
			if _, _, ok := src.Extent(r.Table); !ok {
				return Region{}, newParseError(tok, fmt.Errorf("%w: %q", ErrUnknownTable, r.Table))
			}
		}
		ranges = append(ranges, r)
	}
	return Region{ranges: ranges}, nil
}

// MustParse is like Parse without a resolver but panics on error.
func MustParse(text string) Region {
	g, err := Parse(text, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func isSeparator(ch rune) bool {
	switch ch {
	case ';', ',', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// splitTokens splits on separators outside quoted table names.
func splitTokens(text string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	quoted := false
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '\'':
			if quoted && i+1 < len(runes) && runes[i+1] == '\'' {
				cur.WriteString("''")
				i++
				continue
			}
			quoted = !quoted
			cur.WriteRune(ch)
		case !quoted && isSeparator(ch):
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(ch)
		}
	}
	if quoted {
		return nil, newParseError(text, fmt.Errorf("%w: unterminated quote", ErrInvalidFormat))
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// splitColon splits a token at ':' characters outside quotes.
func splitColon(tok string) []string {
	var parts []string
	quoted := false
	last := 0
	for i, ch := range tok {
		switch {
		case ch == '\'':
			quoted = !quoted
		case ch == ':' && !quoted:
			parts = append(parts, tok[last:i])
			last = i + 1
		}
	}
	return append(parts, tok[last:])
}

func parseRange(tok string) (Range, error) {
	parts := splitColon(tok)
	if len(parts) > 2 {
		return Range{}, newParseError(tok, ErrInvalidFormat)
	}
	table, row, col, err := parseRef(parts[0], "")
	if err != nil {
		return Range{}, newParseError(tok, err)
	}
	if table == "" {
		return Range{}, newParseError(tok, fmt.Errorf("%w: missing table name", ErrInvalidFormat))
	}
	if len(parts) == 1 {
		return Cell(table, row, col), nil
	}
	endTable, endRow, endCol, err := parseRef(parts[1], table)
	if err != nil {
		return Range{}, newParseError(tok, err)
	}
	if endTable != table {
		return Range{}, newParseError(tok, fmt.Errorf("%w: range spans tables %q and %q", ErrInvalidFormat, table, endTable))
	}
	return NewRange(table, row, col, endRow, endCol), nil
}

// parseRef reads "[Table.]A1" and returns 0-based coordinates.
func parseRef(ref, defaultTable string) (table string, row, col int, err error) {
	ref = strings.TrimPrefix(ref, "$")
	var cell string
	switch {
	case strings.HasPrefix(ref, "'"):
		name, rest, ok := readQuoted(ref)
		if !ok || !strings.HasPrefix(rest, ".") {
			return "", 0, 0, fmt.Errorf("%w: bad quoted table name", ErrInvalidFormat)
		}
		table, cell = name, rest[1:]
	default:
		idx := strings.LastIndex(ref, ".")
		if idx < 0 {
			table, cell = defaultTable, ref
		} else {
			table, cell = ref[:idx], ref[idx+1:]
		}
	}
	row, col, err = parseCell(cell)
	return table, row, col, err
}

// readQuoted reads a quoted name at the start of s and returns it with the
// remaining text.
func readQuoted(s string) (name, rest string, ok bool) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return b.String(), s[i+1:], true
	}
	return "", "", false
}

func parseCell(cell string) (row, col int, err error) {
	cell = strings.ReplaceAll(cell, "$", "")
	if cell == "" {
		return 0, 0, fmt.Errorf("%w: missing cell", ErrInvalidFormat)
	}
	c, r, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return r - 1, c - 1, nil
}
