package odf

import (
	"encoding/xml"
	"io"
)

// Writer emits elements with literal prefixed names. The first error is
// kept and returned by Flush; later calls do nothing.
type Writer struct {
	enc *xml.Encoder
	err error
}

// NewWriter returns a writer on w. Indent is applied when indent is set.
func NewWriter(w io.Writer, indent bool) *Writer {
	enc := xml.NewEncoder(w)
	if indent {
		enc.Indent("", "  ")
	}
	return &Writer{enc: enc}
}

// Header writes the XML declaration.
func (w *Writer) Header() {
	w.token(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)})
}

// Start opens an element.
func (w *Writer) Start(name string, attrs ...Attr) {
	se := xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	w.token(se)
}

// End closes an element.
func (w *Writer) End(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

// Text writes escaped character data.
func (w *Writer) Text(s string) {
	if s == "" {
		return
	}
	w.token(xml.CharData(s))
}

// Leaf writes an element without children.
func (w *Writer) Leaf(name string, attrs ...Attr) {
	w.Start(name, attrs...)
	w.End(name)
}

// Paragraphs writes one text:p element per line of s.
func (w *Writer) Paragraphs(s string) {
	for _, line := range splitLines(s) {
		w.Start("text:p")
		w.Text(line)
		w.End("text:p")
	}
}

// Element writes el and its subtree.
func (w *Writer) Element(el *Element) {
	w.Start(el.Name, el.Attrs...)
	w.Text(el.Text)
	for _, c := range el.Children {
		w.Element(c)
	}
	w.End(el.Name)
}

// Flush writes buffered output and returns the first error.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.enc.Flush()
	return w.err
}

func (w *Writer) token(t xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(t)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
