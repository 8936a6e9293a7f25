package chartshape

import "io"

// Persistable shapes save and restore their state as chart XML.
type Persistable interface {
	SaveXML(w io.Writer) error
	LoadXML(r io.Reader) error
}

// Positioned shapes have a position in centimetres.
type Positioned interface {
	Position() (x, y float64)
	SetPosition(x, y float64)
}

// Resizable shapes have a size in centimetres.
type Resizable interface {
	Size() (w, h float64)
	SetSize(w, h float64)
}

// Hideable shapes can be hidden.
type Hideable interface {
	IsVisible() bool
	SetVisible(b bool)
}

// Stackable shapes have a z-order.
type Stackable interface {
	ZIndex() int
	SetZIndex(z int)
}

// Paintable draws a shape into w.
type Paintable interface {
	Paint(w io.Writer) error
}

var (
	_ Persistable = (*Shape)(nil)
	_ Positioned  = (*Shape)(nil)
	_ Resizable   = (*Shape)(nil)
	_ Hideable    = (*Shape)(nil)
	_ Stackable   = (*Shape)(nil)
)
