package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/philowalk/internal/model"
)

// SimpleWriter prints the summary line. With verbose enabled it also prints
// the final path, one article title per line.
type SimpleWriter struct {
	baseWriter

	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables printing the final path after the summary.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary of result.
func (w *SimpleWriter) Write(result *model.WalkResult) (int, error) {
	var sb strings.Builder
	sb.WriteString(Summary(result))
	sb.WriteString("\n")

	if w.verbose && len(result.Path) > 0 {
		sb.WriteString("\npath:\n")
		for i, u := range result.Path {
			fmt.Fprintf(&sb, "  %3d  %s\n", i, result.TitleOf(u))
		}
	}

	return io.WriteString(w.output, sb.String())
}
