// Package report renders a finished walk.
//
// Three writers implement the Writer interface:
//   - SimpleWriter: the one-line summary printed after a walk
//   - JSONWriter: the full WalkResult for tool integration
//   - MarkdownWriter: a shareable document with the path and visited articles
//
// Report data lives in the model package; this package only formats it.
package report
