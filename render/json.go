package render

import (
	"encoding/json"
	"io"

	"github.com/mr-martian/ap-ud-linearize/score"
)

// JSONRenderer writes score results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes score results as a JSON array.
func (r *JSONRenderer) Render(results []score.Result) error {
	if results == nil {
		results = []score.Result{}
	}
	return json.NewEncoder(r.W).Encode(results)
}
