// Package output serializes inspection documents.
package output

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

// ToJSON encodes v, indented by two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteDocument writes doc to w followed by a newline.
func WriteDocument(w io.Writer, doc *models.Document, pretty bool) error {
	data, err := ToJSON(doc, pretty)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// ReadDocument decodes a document written by WriteDocument.
func ReadDocument(r io.Reader) (*models.Document, error) {
	var doc models.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
