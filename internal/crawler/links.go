package crawler

import (
	"context"

	"github.com/nao1215/philowalk/internal/model"
)

// LinkSource is the ordered link sequence of a single article.
// The article is fetched on the first call to Next and never again; links are
// then handed out one at a time. Once exhausted, Next keeps returning the end
// marker, so over-pulling is a safe no-op.
type LinkSource struct {
	fetcher PageFetcher
	url     model.ArticleURL
	origin  string

	fetched bool
	title   string
	links   []model.ArticleURL
	cursor  int
	err     error
}

// NewLinkSource creates a LinkSource for the article at u. No I/O happens until
// the first call to Next.
func NewLinkSource(fetcher PageFetcher, u model.ArticleURL, origin string) *LinkSource {
	return &LinkSource{
		fetcher: fetcher,
		url:     u,
		origin:  origin,
	}
}

// Next returns the next link. ok is false once the sequence is exhausted.
// A fetch failure is returned from the first call and repeated on every later
// call without fetching again.
func (s *LinkSource) Next(ctx context.Context) (link model.ArticleURL, ok bool, err error) {
	if err := s.load(ctx); err != nil {
		return "", false, err
	}
	if s.cursor >= len(s.links) {
		return "", false, nil
	}
	link = s.links[s.cursor]
	s.cursor++
	return link, true, nil
}

// Links returns every link of the article in order, regardless of how many
// have already been pulled with Next.
func (s *LinkSource) Links(ctx context.Context) ([]model.ArticleURL, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	out := make([]model.ArticleURL, len(s.links))
	copy(out, s.links)
	return out, nil
}

// Title returns the heading of the fetched article. It is empty until the
// first successful pull and for pages without a heading.
func (s *LinkSource) Title() string {
	return s.title
}

// load fetches and extracts the links exactly once.
func (s *LinkSource) load(ctx context.Context) error {
	if s.fetched {
		return s.err
	}
	s.fetched = true

	content, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		s.err = err
		return err
	}
	s.title = content.Title
	s.links = content.Links(s.origin)
	return nil
}
