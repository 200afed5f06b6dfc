package walker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/philowalk/internal/crawler"
	"github.com/nao1215/philowalk/internal/model"
	"github.com/nao1215/philowalk/internal/wiki"
)

// DefaultMaxHops is the hop budget of a walk.
const DefaultMaxHops = 256

// VisitFunc is called with each article as it is descended into, the start
// article included, before anything is fetched for it.
type VisitFunc func(u model.ArticleURL, hops int)

// Walker walks from a start article towards Philosophy.
type Walker struct {
	// fetcher retrieves article content for each frame.
	fetcher crawler.PageFetcher

	// maxHops is the hop budget.
	maxHops int

	// origin resolves site-relative links.
	origin string

	// delay is waited before fetching each descended-into article.
	delay time.Duration

	// onVisit reports progress; nil means no reporting.
	onVisit VisitFunc

	logger *slog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxHops sets the hop budget.
func WithMaxHops(maxHops int) Option {
	return func(w *Walker) {
		w.maxHops = maxHops
	}
}

// WithOrigin sets the site origin relative links are resolved against.
func WithOrigin(origin string) Option {
	return func(w *Walker) {
		w.origin = origin
	}
}

// WithDelay sets a politeness delay applied before each descent.
func WithDelay(d time.Duration) Option {
	return func(w *Walker) {
		w.delay = d
	}
}

// WithVisitFunc sets the progress callback.
func WithVisitFunc(fn VisitFunc) Option {
	return func(w *Walker) {
		w.onVisit = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker that fetches articles with fetcher.
func New(fetcher crawler.PageFetcher, opts ...Option) *Walker {
	w := &Walker{
		fetcher: fetcher,
		maxHops: DefaultMaxHops,
		origin:  wiki.DefaultOrigin,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// frame is one article on the walk stack.
type frame struct {
	url   model.ArticleURL
	links *crawler.LinkSource

	// titled is set once the fetched heading has been recorded.
	titled bool
}

// walk holds the state of a single Walk call.
type walk struct {
	*Walker

	stack   []*frame
	visited map[model.ArticleURL]struct{}
	hops    int
	result  *model.WalkResult
}

// Walk runs one walk from start. It returns the result together with a non-nil
// error if an article could not be fetched or ctx was cancelled; in that case
// the result is marked incomplete and records how far the walk got. A fragment
// on start is dropped so the start article is keyed like every other link.
func (w *Walker) Walk(ctx context.Context, start model.ArticleURL) (*model.WalkResult, error) {
	start = model.ArticleURL(wiki.StripFragment(start.String()))

	s := &walk{
		Walker:  w,
		stack:   make([]*frame, 0, 16),
		visited: map[model.ArticleURL]struct{}{start: {}},
		result:  model.NewWalkResult(start, w.maxHops),
	}

	w.logger.Debug("starting walk", "start", start, "maxHops", w.maxHops)
	s.push(start)

	return s.run(ctx)
}

// run is the main loop. entering is true right after a frame has been pushed,
// which is when the termination checks apply.
func (s *walk) run(ctx context.Context) (*model.WalkResult, error) {
	entering := true

	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]

		if entering {
			entering = false

			if err := ctx.Err(); err != nil {
				return s.abort(err)
			}
			if s.hops >= s.maxHops {
				s.logger.Debug("hop limit reached", "url", top.url, "hops", s.hops)
				return s.finish(model.OutcomeHopLimitExceeded)
			}
			if wiki.ContainsPhilosophy(top.url) {
				s.logger.Debug("found Philosophy", "url", top.url, "hops", s.hops)
				return s.finish(model.OutcomeFound)
			}
		}

		next, ok, err := top.links.Next(ctx)
		if err != nil {
			return s.abort(fmt.Errorf("failed to read links of %s: %w", top.url, err))
		}

		if !top.titled {
			top.titled = true
			s.result.SetTitle(top.url, top.links.Title())
			s.logger.Debug("article read", "url", top.url, "title", top.links.Title())
		}

		if !ok {
			s.pop()
			continue
		}

		if _, seen := s.visited[next]; seen {
			s.logger.Debug("skipping visited article", "from", top.url, "url", next)
			continue
		}

		if err := s.wait(ctx); err != nil {
			return s.abort(err)
		}

		s.hops++
		s.visited[next] = struct{}{}
		s.push(next)
		entering = true
	}

	s.logger.Debug("dead end", "start", s.result.StartURL)
	return s.finish(model.OutcomeDeadEnd)
}

// push adds a frame for u and reports the visit. The article is fetched on
// the first pull from the frame.
func (s *walk) push(u model.ArticleURL) {
	s.stack = append(s.stack, &frame{
		url:   u,
		links: crawler.NewLinkSource(s.fetcher, u, s.origin),
	})
	s.result.Visited = append(s.result.Visited, u)

	s.logger.Debug("descending", "url", u, "hops", s.hops)
	if s.onVisit != nil {
		s.onVisit(u, s.hops)
	}
}

// pop removes the exhausted top frame. Popping a non-root frame undoes the hop
// that pushed it; the root was never counted.
func (s *walk) pop() {
	top := s.stack[len(s.stack)-1]
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]

	if len(s.stack) > 0 {
		s.hops--
		s.logger.Debug("backtracking", "from", top.url, "to", s.stack[len(s.stack)-1].url, "hops", s.hops)
	}
}

// wait sleeps for the politeness delay, returning early on cancellation.
func (s *walk) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// path copies the current stack URLs, root first.
func (s *walk) path() []model.ArticleURL {
	path := make([]model.ArticleURL, len(s.stack))
	for i, f := range s.stack {
		path[i] = f.url
	}
	return path
}

func (s *walk) finish(outcome model.Outcome) (*model.WalkResult, error) {
	s.result.Path = s.path()
	s.result.Finish(outcome, s.hops)
	return s.result, nil
}

func (s *walk) abort(err error) (*model.WalkResult, error) {
	s.result.Path = s.path()
	s.result.Abort(s.hops)
	return s.result, err
}
