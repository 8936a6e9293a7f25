package odf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attr is an attribute with a prefixed name such as "chart:class".
type Attr struct {
	Name  string
	Value string
}

// Element is a decoded XML element. Names use the canonical prefixes of
// the known namespaces regardless of the prefixes in the source document.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	// Text is the character data directly inside the element.
	Text string
}

// Decode reads one document and returns its root element.
func Decode(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	var stack []*Element
	var root *Element

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			el := &Element{Name: qualify(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualifyAttr(a.Name), Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("odf: empty document")
	}
	return root, nil
}

func qualify(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	if p, ok := prefixes[n.Space]; ok {
		return p + ":" + n.Local
	}
	return n.Space + ":" + n.Local
}

func qualifyAttr(n xml.Name) string {
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	return qualify(n)
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is missing.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// SetAttr adds or replaces an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// FirstChild returns the first child called name, or nil.
func (e *Element) FirstChild(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child called name.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first element called name in depth-first order,
// including e itself.
func (e *Element) Find(name string) *Element {
	if e == nil {
		return nil
	}
	if e.Name == name {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Paragraphs returns the text of the text:p children joined by newlines,
// including text inside spans.
func (e *Element) Paragraphs() string {
	if e == nil {
		return ""
	}
	var lines []string
	for _, p := range e.ChildrenNamed("text:p") {
		lines = append(lines, p.TextContent())
	}
	return strings.Join(lines, "\n")
}

// TextContent returns all character data below e.
func (e *Element) TextContent() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*Element)
	walk = func(el *Element) {
		b.WriteString(el.Text)
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(e)
	return b.String()
}
