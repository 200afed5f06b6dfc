package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/philowalk/internal/model"
)

// MarkdownWriter outputs the walk as a Markdown document.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(result *model.WalkResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeAlert(md, result)
	w.writePath(md, result)
	w.writeVisited(md, result)

	md.HorizontalRule()
	md.PlainText("Generated by philowalk")

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.WalkResult) {
	md.H1("Getting to Philosophy: " + result.TitleOf(result.StartURL))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start", "`" + result.StartURL.String() + "`"},
			{"Outcome", outcomeText(result)},
			{"Hops", strconv.Itoa(result.Hops)},
			{"Hop Limit", strconv.Itoa(result.MaxHops)},
			{"Articles Visited", strconv.Itoa(len(result.Visited))},
			{"Started", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", result.Duration().String()},
		},
	})
	md.PlainText("")
}

func outcomeText(result *model.WalkResult) string {
	if !result.Complete {
		return "Aborted"
	}
	return result.Outcome.String()
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.WalkResult) {
	switch {
	case !result.Complete:
		md.Cautionf("%s. The path below is partial.", Summary(result))
	case result.Outcome == model.OutcomeFound:
		md.Tip(Summary(result))
	case result.Outcome == model.OutcomeHopLimitExceeded:
		md.Warningf("%s. Try a larger --max-hops.", Summary(result))
	default:
		md.Note(Summary(result))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePath(md *markdown.Markdown, result *model.WalkResult) {
	md.H2("Path")
	md.PlainText("")

	if len(result.Path) == 0 {
		md.PlainText("The walk backtracked out of every article.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(result.Path))
	for i, u := range result.Path {
		rows = append(rows, []string{strconv.Itoa(i), result.TitleOf(u), u.String()})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Hop", "Article", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeVisited(md *markdown.Markdown, result *model.WalkResult) {
	md.H2("Visited Articles")
	md.PlainText("")

	titles := make([]string, 0, len(result.Visited))
	for _, u := range result.Visited {
		titles = append(titles, result.TitleOf(u))
	}
	md.BulletList(titles...)
	md.PlainText("")
}
