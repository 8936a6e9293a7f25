package chartshape

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/odf"
)

// Media types written to and expected in chart packages.
const (
	PackageMediaType = "application/vnd.oasis.opendocument.graphics"
	ChartMediaType   = "application/vnd.oasis.opendocument.chart"
)

// frameFields are the draw:frame attributes holding shape geometry.
var frameFields = []odf.Field[Shape]{
	odf.String("draw:name", func(s *Shape) *string { return &s.Name }),
	odf.Length("svg:x", "cm", func(s *Shape) *float64 { return &s.x }),
	odf.Length("svg:y", "cm", func(s *Shape) *float64 { return &s.y }),
	odf.Length("svg:width", "cm", func(s *Shape) *float64 { return &s.w }),
	odf.Length("svg:height", "cm", func(s *Shape) *float64 { return &s.h }),
	odf.Int("draw:z-index", func(s *Shape) *int { return &s.zIndex }),
	odf.Bool("ext:visible", func(s *Shape) *bool { return &s.visible }),
}

// WritePackage stores shapes in a zip document: content.xml holds one
// draw:frame per shape referring to "Object N/content.xml".
func WritePackage(w io.Writer, shapes ...*Shape) error {
	zw := zip.NewWriter(w)
	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := io.WriteString(mt, PackageMediaType); err != nil {
		return err
	}

	objects := make([]string, len(shapes))
	for i, s := range shapes {
		objects[i] = "Object " + strconv.Itoa(i+1)
		f, err := zw.Create(objects[i] + "/content.xml")
		if err != nil {
			return err
		}
		if err := s.SaveXML(f); err != nil {
			return fmt.Errorf("save %s: %w", objects[i], err)
		}
	}

	f, err := zw.Create("content.xml")
	if err != nil {
		return err
	}
	if err := writeFrames(f, shapes, objects); err != nil {
		return err
	}

	f, err = zw.Create("META-INF/manifest.xml")
	if err != nil {
		return err
	}
	if err := writeManifest(f, objects); err != nil {
		return err
	}
	return zw.Close()
}

// SavePackage writes shapes to the file at path.
func SavePackage(filePath string, shapes ...*Shape) error {
	f, err := os.Create(filePath)
	if err != nil {
		return err
	}
	if err := WritePackage(f, shapes...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFrames(w io.Writer, shapes []*Shape, objects []string) error {
	xw := odf.NewWriter(w, false)
	xw.Header()
	xw.Start("office:document-content", odf.NamespaceAttrs()...)
	xw.Start("office:body")
	xw.Start("office:drawing")
	xw.Start("draw:page", odf.Attr{Name: "draw:name", Value: "page1"})
	for i, s := range shapes {
		xw.Start("draw:frame", odf.WriteAttrs(s, frameFields)...)
		xw.Leaf("draw:object",
			odf.Attr{Name: "xlink:href", Value: "./" + objects[i]},
			odf.Attr{Name: "xlink:type", Value: "simple"},
			odf.Attr{Name: "xlink:show", Value: "embed"},
			odf.Attr{Name: "xlink:actuate", Value: "onLoad"})
		xw.End("draw:frame")
	}
	xw.End("draw:page")
	xw.End("office:drawing")
	xw.End("office:body")
	xw.End("office:document-content")
	return xw.Flush()
}

func writeManifest(w io.Writer, objects []string) error {
	xw := odf.NewWriter(w, true)
	xw.Header()
	xw.Start("manifest:manifest", odf.Attr{Name: "xmlns:manifest", Value: odf.NSManifest})
	entry := func(p, mediaType string) {
		xw.Leaf("manifest:file-entry",
			odf.Attr{Name: "manifest:full-path", Value: p},
			odf.Attr{Name: "manifest:media-type", Value: mediaType})
	}
	entry("/", PackageMediaType)
	entry("content.xml", "text/xml")
	for _, obj := range objects {
		entry(obj+"/", ChartMediaType)
		entry(obj+"/content.xml", "text/xml")
	}
	xw.End("manifest:manifest")
	return xw.Flush()
}

// ReadPackage loads every chart object of a package. An object that fails
// to load is recorded as a LoadError and reported through
// opts.Interaction; the other objects keep loading. The returned error is
// set only when the package itself cannot be read.
func ReadPackage(r io.ReaderAt, size int64, opts Options) ([]*Shape, []*LoadError, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	content, err := readEntry(zr, "content.xml")
	if err != nil {
		return nil, nil, err
	}
	if content == nil {
		return nil, nil, fmt.Errorf("%w: content.xml is missing", ErrInvalidFormat)
	}
	doc, err := odf.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: content.xml: %v", ErrInvalidFormat, err)
	}
	manifest, err := readManifest(zr)
	if err != nil {
		log.Warn().Err(err).Msg("package manifest unreadable")
	}

	var shapes []*Shape
	var failures []*LoadError
	for _, frame := range collect(doc, "draw:frame") {
		href := frame.FirstChild("draw:object").AttrOr("xlink:href", "")
		if href == "" {
			// Placeholder frames carry no object.
			continue
		}
		dir := objectDir(href)
		s, err := loadObject(zr, manifest, dir, frame, opts)
		if err != nil {
			le := NewLoadError(dir, "chart", err)
			opts.Interaction.Report(le)
			failures = append(failures, le)
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes, failures, nil
}

// OpenPackage reads the package at path.
func OpenPackage(filePath string, opts Options) ([]*Shape, []*LoadError, error) {
	f, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	return ReadPackage(f, info.Size(), opts)
}

func loadObject(zr *zip.Reader, manifest map[string]string, dir string, frame *odf.Element, opts Options) (*Shape, error) {
	if manifest != nil {
		mediaType, ok := manifest[dir+"/"]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not listed in the manifest", ErrInvalidFormat, dir)
		}
		if !strings.HasPrefix(mediaType, "application/vnd.oasis.opendocument") {
			return nil, fmt.Errorf("%w: object type %s", ErrInvalidFormat, mediaType)
		}
	}
	data, err := readEntry(zr, dir+"/content.xml")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s/content.xml is missing", ErrInvalidFormat, dir)
	}
	s := NewShape(opts)
	warnAttrs(frame, odf.ReadAttrs(frame, s, frameFields))
	if err := s.LoadXML(bytes.NewReader(data)); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func readManifest(zr *zip.Reader) (map[string]string, error) {
	data, err := readEntry(zr, "META-INF/manifest.xml")
	if err != nil || data == nil {
		return nil, err
	}
	doc, err := odf.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	entries := make(map[string]string)
	for _, e := range doc.ChildrenNamed("manifest:file-entry") {
		entries[e.AttrOr("manifest:full-path", "")] = e.AttrOr("manifest:media-type", "")
	}
	return entries, nil
}

// readEntry returns the named zip entry, or nil when it does not exist.
func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// objectDir turns an xlink:href such as "./Object 1" or "#Object 1/" into
// the package directory.
func objectDir(href string) string {
	href = strings.TrimPrefix(href, "#")
	href = strings.TrimPrefix(href, "./")
	return strings.TrimSuffix(path.Clean(href), "/")
}

func collect(el *odf.Element, name string) []*odf.Element {
	var out []*odf.Element
	var walk func(*odf.Element)
	walk = func(e *odf.Element) {
		if e.Name == name {
			out = append(out, e)
			return
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(el)
	return out
}
