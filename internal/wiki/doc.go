// Package wiki classifies and normalizes Wikipedia link targets.
//
// Everything here is pure string logic with no I/O:
//   - IsQualifyingLink decides whether an href points at an ordinary article
//   - NormalizeLink turns an href into an absolute, fragment-free ArticleURL
//   - IsStartURLAcceptable validates the user-supplied entry point
//   - ContainsPhilosophy is the walk's termination test
//
// Classification is fail-open: anything not matched by one of the exclusion
// rules is treated as an article link.
package wiki
