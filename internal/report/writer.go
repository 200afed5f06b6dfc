package report

import (
	"fmt"
	"io"

	"github.com/nao1215/philowalk/internal/model"
)

// Writer renders a walk result to its destination.
type Writer interface {
	// Write outputs the report and returns the number of bytes written.
	Write(result *model.WalkResult) (int, error)
}

// MultiWriter writes the same result to several Writers, for example the
// terminal and a report file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to every Writer, stopping on the first error.
func (m *MultiWriter) Write(result *model.WalkResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// New returns the Writer for format ("text", "json" or "markdown").
func New(format string, output io.Writer) (Writer, error) {
	switch format {
	case "", "text":
		return NewSimpleWriter(output), nil
	case "json":
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case "markdown":
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Summary returns the one-line description of how a walk ended.
func Summary(result *model.WalkResult) string {
	if !result.Complete {
		return fmt.Sprintf("walk aborted after %d hops", result.Hops)
	}
	switch result.Outcome {
	case model.OutcomeFound:
		return fmt.Sprintf("found Philosophy in %d hops", result.Hops)
	case model.OutcomeHopLimitExceeded:
		return fmt.Sprintf("too many hops: reached limit (%d) before finding Philosophy", result.MaxHops)
	case model.OutcomeDeadEnd:
		return fmt.Sprintf("dead end: no unvisited links left after %d hops", result.Hops)
	default:
		return "walk ended in an unknown state"
	}
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
