// Package walker runs the "getting to Philosophy" walk.
//
// A Walker keeps a stack of article frames. From the top frame it pulls the
// next link in reading order; an unvisited link is descended into (pushed),
// a visited one is skipped, and an exhausted frame is popped so its parent
// can try its next link. The walk ends when an article URL contains
// "Philosophy", when the hop budget is used up, or when the start article
// runs out of links (a dead end).
//
// The walk is a plain loop over an explicit stack, so its depth is bounded by
// the hop budget rather than by the goroutine stack. All walk state lives in a
// single call to Walk; one Walker can run any number of walks.
package walker
