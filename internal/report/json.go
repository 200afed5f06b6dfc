package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/philowalk/internal/model"
)

// JSONWriter outputs the walk result as JSON.
type JSONWriter struct {
	baseWriter

	// indent is the per-level indentation; empty means compact output.
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents nested values by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonReport adds the rendered summary to the raw result.
type jsonReport struct {
	*model.WalkResult

	Summary    string  `json:"summary"`
	DurationMS float64 `json:"duration_ms"`
}

// Write outputs result as a single JSON document followed by a newline.
func (w *JSONWriter) Write(result *model.WalkResult) (int, error) {
	v := jsonReport{
		WalkResult: result,
		Summary:    Summary(result),
		DurationMS: float64(result.Duration().Microseconds()) / 1000,
	}

	var (
		data []byte
		err  error
	)
	if w.indent != "" {
		data, err = json.MarshalIndent(v, "", w.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
