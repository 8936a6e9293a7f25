// Package odf reads and writes the OpenDocument XML used to persist chart
// shapes: a small element tree, a prefixed-name writer, declarative
// attribute tables and the embedded data table.
package odf

// Namespace URIs of the prefixes used by chart documents.
const (
	NSOffice   = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	NSTable    = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	NSText     = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	NSChart    = "urn:oasis:names:tc:opendocument:xmlns:chart:1.0"
	NSDraw     = "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
	NSSVG      = "urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"
	NSStyle    = "urn:oasis:names:tc:opendocument:xmlns:style:1.0"
	NSFO       = "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
	NSXLink    = "http://www.w3.org/1999/xlink"
	NSDr3d     = "urn:oasis:names:tc:opendocument:xmlns:dr3d:1.0"
	NSManifest = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"
	// NSExt holds settings OpenDocument has no attribute for.
	NSExt = "urn:ukaji3:chartshape:1.0"
)

// prefixes maps namespace URIs to the prefixes used in element names.
var prefixes = map[string]string{
	NSOffice:   "office",
	NSTable:    "table",
	NSText:     "text",
	NSChart:    "chart",
	NSDraw:     "draw",
	NSSVG:      "svg",
	NSStyle:    "style",
	NSFO:       "fo",
	NSXLink:    "xlink",
	NSDr3d:     "dr3d",
	NSManifest: "manifest",
	NSExt:      "ext",
}

// NamespaceAttrs returns the xmlns declarations for every known prefix, in
// a stable order.
func NamespaceAttrs() []Attr {
	order := []string{NSOffice, NSTable, NSText, NSChart, NSDraw, NSSVG, NSStyle, NSFO, NSXLink, NSDr3d, NSExt}
	attrs := make([]Attr, len(order))
	for i, ns := range order {
		attrs[i] = Attr{Name: "xmlns:" + prefixes[ns], Value: ns}
	}
	return attrs
}
