package model

import "time"

// WalkResult holds everything a finished walk produced.
// A walk aborted by a fetch error or cancellation still returns a WalkResult
// describing how far it got; Outcome is only meaningful when Complete is true.
type WalkResult struct {
	// StartURL is the article the walk began at.
	StartURL ArticleURL `json:"start_url"`

	// Outcome is the terminal state of the walk.
	Outcome Outcome `json:"outcome"`

	// Complete is false when the walk was aborted before reaching a terminal state.
	Complete bool `json:"complete"`

	// Hops is the hop counter at termination.
	Hops int `json:"hops"`

	// MaxHops is the hop budget the walk ran with.
	MaxHops int `json:"max_hops"`

	// Path is the frame stack at termination, root first.
	// For OutcomeFound its last element is the Philosophy article.
	Path []ArticleURL `json:"path"`

	// Visited lists every article descended into, in the order they were entered,
	// including branches that were later backtracked out of.
	Visited []ArticleURL `json:"visited"`

	// Titles holds the heading of every article that was fetched, keyed by URL.
	// Articles the walk entered but never had to read are absent.
	Titles map[ArticleURL]string `json:"titles,omitempty"`

	// StartedAt is when the walk began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the walk stopped.
	FinishedAt time.Time `json:"finished_at"`
}

// NewWalkResult creates a WalkResult for a walk starting at start.
func NewWalkResult(start ArticleURL, maxHops int) *WalkResult {
	return &WalkResult{
		StartURL:  start,
		MaxHops:   maxHops,
		Path:      make([]ArticleURL, 0),
		Visited:   make([]ArticleURL, 0),
		Titles:    make(map[ArticleURL]string),
		StartedAt: time.Now(),
	}
}

// Finish records the terminal outcome and the hop count at which it happened.
func (r *WalkResult) Finish(outcome Outcome, hops int) {
	r.Outcome = outcome
	r.Hops = hops
	r.Complete = true
	r.FinishedAt = time.Now()
}

// Abort marks the walk as stopped before a terminal state was reached.
func (r *WalkResult) Abort(hops int) {
	r.Hops = hops
	r.Complete = false
	r.FinishedAt = time.Now()
}

// SetTitle records the fetched heading of u. Empty titles are ignored.
func (r *WalkResult) SetTitle(u ArticleURL, title string) {
	if title == "" {
		return
	}
	if r.Titles == nil {
		r.Titles = make(map[ArticleURL]string)
	}
	r.Titles[u] = title
}

// TitleOf returns the fetched heading of u, falling back to the title derived
// from the URL.
func (r *WalkResult) TitleOf(u ArticleURL) string {
	if t, ok := r.Titles[u]; ok {
		return t
	}
	return u.Title()
}

// Found reports whether the walk reached Philosophy.
func (r *WalkResult) Found() bool {
	return r.Complete && r.Outcome == OutcomeFound
}

// Duration returns how long the walk ran.
func (r *WalkResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
