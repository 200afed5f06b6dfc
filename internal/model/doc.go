// Package model defines the data structures shared across philowalk.
//
// This package contains the following main types:
//   - ArticleURL: a normalized, fragment-free absolute article URL
//   - Outcome: the terminal state of a walk (found, hop limit, dead end)
//   - WalkResult: everything a finished walk produced, used by the reporters
//
// The walker, crawler and report packages all depend on these types, so they
// live here to keep the import graph acyclic. WalkResult is JSON-serializable
// for the JSON report.
package model
