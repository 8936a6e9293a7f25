// Package plot derives chart series from a proxy model and holds the
// plot area, axis and legend settings of a chart.
package plot

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColors are the twelve series colours assigned in order.
var DefaultColors = []string{
	"#004586", "#ff420e", "#ffd320", "#579d1c",
	"#7e0021", "#83caff", "#314004", "#aecf00",
	"#4b1f6f", "#ff950e", "#c5000b", "#0084d1",
}

// Palette is the ordered list of automatic series colours.
type Palette []colorful.Color

// DefaultPalette returns the built-in twelve colour palette.
func DefaultPalette() Palette {
	p, _ := ParsePalette(DefaultColors)
	return p
}

// ParsePalette reads "#rrggbb" or "#rgb" strings.
func ParsePalette(hex []string) (Palette, error) {
	p := make(Palette, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid palette colour %q: %w", h, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// At returns the colour for series index i. Indices wrap around the
// palette length.
func (p Palette) At(i int) colorful.Color {
	if len(p) == 0 {
		return colorful.Color{}
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Hex returns the palette as hex strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
