package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartshape-go/pkg/chartshape/models"
)

func TestToJSON(t *testing.T) {
	compact, err := ToJSON(map[string]int{"a": 1}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(compact))

	pretty, err := ToJSON(map[string]int{"a": 1}, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(pretty))
}

func TestWriteDocument(t *testing.T) {
	two := 2.0
	doc := &models.Document{
		Source: "book.xlsx",
		Shapes: []models.ShapeData{{
			ID:        "id-1",
			ChartType: "bar",
			Subtype:   "normal",
			Legend:    "end",
			Direction: "rows",
			Series:    []models.SeriesData{{Label: "North", Color: "#004586", Values: []*float64{nil, &two}}},
			W:         8,
			H:         5,
		}},
		Errors: []string{"broken"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, doc, false))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"values":[null,2]`)
	assert.NotContains(t, buf.String(), "subtitle")

	back, err := ReadDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", back.Source)
	require.Len(t, back.Shapes, 1)
	assert.Nil(t, back.Shapes[0].Series[0].Values[0])
	assert.Equal(t, 2.0, *back.Shapes[0].Series[0].Values[1])
	assert.Equal(t, []string{"broken"}, back.Errors)
}

func TestReadDocumentInvalid(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("{"))
	assert.Error(t, err)
}
