package chartshape

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/plot"
)

// Label is a text element of a chart: the title, subtitle or footer.
// X and Y are measured in centimetres from the top left of the shape.
type Label struct {
	Text    string
	X       float64
	Y       float64
	Visible bool
	Font    plot.Font
	Color   colorful.Color
}

func newLabel(text string, size float64) *Label {
	return &Label{
		Text: text,
		Font: plot.Font{Family: plot.DefaultFont.Family, Size: size},
	}
}
