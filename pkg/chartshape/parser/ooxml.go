package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// relationship is one entry of a .rels part.
type relationship struct {
	ID     string
	Type   string
	Target string
}

// sheetPart links a sheet name to its worksheet part.
type sheetPart struct {
	Name string
	Path string
}

// readPart returns the named part, or nil when the package lacks it.
func readPart(r *zip.Reader, name string) ([]byte, error) {
	f, err := r.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// walkSubtree reads tokens up to the end of the element whose start tag was
// just read. visit is called for every nested start element and returns
// true when it consumed that element including its end tag.
func walkSubtree(decoder *xml.Decoder, visit func(se xml.StartElement) bool) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return
		}
		switch t := token.(type) {
		case xml.StartElement:
			if visit != nil && visit(t) {
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
}

// skipSubtree discards the rest of the current element.
func skipSubtree(decoder *xml.Decoder) {
	walkSubtree(decoder, nil)
}

// readElementText returns the character data of the current element.
func readElementText(decoder *xml.Decoder) string {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(b.String())
}

// attrValue returns the attribute with the given local name.
func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrInt(se xml.StartElement, local string) (int64, bool) {
	v, err := strconv.ParseInt(attrValue(se, local), 10, 64)
	return v, err == nil
}

// eachStart calls fn for every start element of data.
func eachStart(data []byte, fn func(decoder *xml.Decoder, se xml.StartElement)) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			return
		}
		if se, ok := token.(xml.StartElement); ok {
			fn(decoder, se)
		}
	}
}

// parseRels reads the relationships of a .rels part.
func parseRels(data []byte) []relationship {
	var rels []relationship
	eachStart(data, func(_ *xml.Decoder, se xml.StartElement) {
		if se.Name.Local != "Relationship" {
			return
		}
		rels = append(rels, relationship{
			ID:     attrValue(se, "Id"),
			Type:   attrValue(se, "Type"),
			Target: attrValue(se, "Target"),
		})
	})
	return rels
}

// readRels returns the relationships of part, such as the ones stored in
// xl/worksheets/_rels/sheet1.xml.rels for xl/worksheets/sheet1.xml.
func readRels(r *zip.Reader, part string) ([]relationship, error) {
	data, err := readPart(r, path.Join(path.Dir(part), "_rels", path.Base(part)+".rels"))
	if err != nil || data == nil {
		return nil, err
	}
	return parseRels(data), nil
}

// resolveTarget resolves a relationship target against the part that
// holds the relationship.
func resolveTarget(part, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(part), target)
}

// isRelType compares the last segment of a relationship type URI.
func isRelType(rel relationship, kind string) bool {
	return path.Base(rel.Type) == kind
}

// workbookSheets lists the worksheets in workbook order.
func workbookSheets(r *zip.Reader) ([]sheetPart, error) {
	const workbook = "xl/workbook.xml"
	data, err := readPart(r, workbook)
	if err != nil || data == nil {
		return nil, err
	}
	rels, err := readRels(r, workbook)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if isRelType(rel, "worksheet") {
			targets[rel.ID] = resolveTarget(workbook, rel.Target)
		}
	}

	var sheets []sheetPart
	eachStart(data, func(_ *xml.Decoder, se xml.StartElement) {
		if se.Name.Local != "sheet" {
			return
		}
		if p, ok := targets[attrValue(se, "id")]; ok {
			sheets = append(sheets, sheetPart{Name: attrValue(se, "name"), Path: p})
		}
	})
	return sheets, nil
}

// parseXfrm reads the offset and extent of an a:xfrm element in pixels.
func parseXfrm(decoder *xml.Decoder) (left, top, width, height int) {
	walkSubtree(decoder, func(se xml.StartElement) bool {
		switch se.Name.Local {
		case "off":
			if x, ok := attrInt(se, "x"); ok {
				left = EMUToPixels(x)
			}
			if y, ok := attrInt(se, "y"); ok {
				top = EMUToPixels(y)
			}
		case "ext":
			if cx, ok := attrInt(se, "cx"); ok {
				width = EMUToPixels(cx)
			}
			if cy, ok := attrInt(se, "cy"); ok {
				height = EMUToPixels(cy)
			}
		}
		return false
	})
	return
}
