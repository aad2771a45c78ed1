package jsonl

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/sentiview"
)

// Writer streams display units as one JSON object per line.
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// WriteView writes every unit of v in order.
func (w *Writer) WriteView(v sentiview.View) error {
	for _, u := range v.Units {
		if err := w.enc.Encode(u); err != nil {
			return err
		}
	}
	return nil
}
