package walker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/philowalk/internal/crawler"
	"github.com/nao1215/philowalk/internal/model"
)

const origin = "https://en.wikipedia.org"

// article returns the URL of the named test article.
func article(name string) model.ArticleURL {
	return model.ArticleURL(origin + "/wiki/" + name)
}

// articles builds a URL slice from article names.
func articles(names ...string) []model.ArticleURL {
	out := make([]model.ArticleURL, len(names))
	for i, n := range names {
		out[i] = article(n)
	}
	return out
}

// renderArticle renders an article whose single prose paragraph links to targets.
func renderArticle(u model.ArticleURL, targets []string) (*crawler.ArticleContent, error) {
	var body strings.Builder
	body.WriteString("<p>")
	for _, target := range targets {
		fmt.Fprintf(&body, `<a href="/wiki/%s">%s</a> `, target, target)
	}
	body.WriteString("</p>")

	name := strings.TrimPrefix(string(u), origin+"/wiki/")
	page := `<html><body><h1 id="firstHeading">Heading of ` + name + `</h1><div id="mw-content-text"><div class="mw-parser-output">` +
		body.String() + `</div></div></body></html>`
	return crawler.ParseArticle(u, strings.NewReader(page))
}

// graphFetcher serves articles from an adjacency list and counts fetches.
type graphFetcher struct {
	mu     sync.Mutex
	graph  map[string][]string
	fail   map[string]error
	counts map[model.ArticleURL]int
}

func newGraphFetcher(graph map[string][]string) *graphFetcher {
	return &graphFetcher{
		graph:  graph,
		fail:   make(map[string]error),
		counts: make(map[model.ArticleURL]int),
	}
}

func (f *graphFetcher) Fetch(_ context.Context, u model.ArticleURL) (*crawler.ArticleContent, error) {
	f.mu.Lock()
	f.counts[u]++
	f.mu.Unlock()

	name := strings.TrimPrefix(string(u), origin+"/wiki/")
	if err, ok := f.fail[name]; ok {
		return nil, err
	}
	return renderArticle(u, f.graph[name])
}

func (f *graphFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.counts {
		n += c
	}
	return n
}

// TestWalk covers the terminal outcomes of a walk.
func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("cycle is skipped and second link reaches Philosophy", func(t *testing.T) {
		t.Parallel()

		fetcher := newGraphFetcher(map[string][]string{
			"A": {"B"},
			"B": {"A", "Philosophy_something"},
		})

		var visits []model.ArticleURL
		w := New(fetcher, WithVisitFunc(func(u model.ArticleURL, _ int) {
			visits = append(visits, u)
		}))

		result, err := w.Walk(context.Background(), article("A"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.Found() {
			t.Fatalf("expected FOUND, got %s", result.Outcome)
		}
		if result.Hops != 2 {
			t.Errorf("expected 2 hops, got %d", result.Hops)
		}
		want := articles("A", "B", "Philosophy_something")
		if diff := cmp.Diff(want, visits); diff != "" {
			t.Errorf("visit order mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, result.Visited); diff != "" {
			t.Errorf("visited mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, result.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
		if fetcher.counts[article("A")] != 1 {
			t.Errorf("expected A to be fetched once, got %d", fetcher.counts[article("A")])
		}
		if fetcher.counts[article("Philosophy_something")] != 0 {
			t.Error("the Philosophy article must not be fetched")
		}
	})

	t.Run("links back into the visited set end in a dead end", func(t *testing.T) {
		t.Parallel()

		fetcher := newGraphFetcher(map[string][]string{
			"A": {"B"},
			"B": {"C"},
			"C": {"A", "B"},
		})

		result, err := New(fetcher).Walk(context.Background(), article("A"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Outcome != model.OutcomeDeadEnd || !result.Complete {
			t.Fatalf("expected complete DEAD_END, got %s (complete=%v)", result.Outcome, result.Complete)
		}
		if result.Hops != 0 {
			t.Errorf("expected hop counter back at 0, got %d", result.Hops)
		}
		if diff := cmp.Diff(articles("A", "B", "C"), result.Visited); diff != "" {
			t.Errorf("visited mismatch (-want +got):\n%s", diff)
		}
		if len(result.Path) != 0 {
			t.Errorf("expected empty path, got %v", result.Path)
		}
	})

	t.Run("fragment on the start URL does not let the walk re-enter it", func(t *testing.T) {
		t.Parallel()

		fetcher := newGraphFetcher(map[string][]string{
			"A": {"B"},
			"B": {"A"},
		})

		result, err := New(fetcher).Walk(context.Background(), article("A")+"#History")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Outcome != model.OutcomeDeadEnd {
			t.Fatalf("expected DEAD_END, got %s", result.Outcome)
		}
		if result.StartURL != article("A") {
			t.Errorf("expected fragment-free start URL, got %q", result.StartURL)
		}
		if diff := cmp.Diff(articles("A", "B"), result.Visited); diff != "" {
			t.Errorf("visited mismatch (-want +got):\n%s", diff)
		}
		if fetcher.counts[article("A")] != 1 {
			t.Errorf("expected A to be fetched once, got %d", fetcher.counts[article("A")])
		}
	})

	t.Run("fetched headings are recorded", func(t *testing.T) {
		t.Parallel()

		fetcher := newGraphFetcher(map[string][]string{
			"A": {"B"},
			"B": {"Philosophy"},
		})

		result, err := New(fetcher).Walk(context.Background(), article("A"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[model.ArticleURL]string{
			article("A"): "Heading of A",
			article("B"): "Heading of B",
		}
		if diff := cmp.Diff(want, result.Titles); diff != "" {
			t.Errorf("titles mismatch (-want +got):\n%s", diff)
		}
		if got := result.TitleOf(article("Philosophy")); got != "Philosophy" {
			t.Errorf("unfetched article should fall back to its URL title, got %q", got)
		}
	})

	t.Run("start article without links is a dead end", func(t *testing.T) {
		t.Parallel()

		result, err := New(newGraphFetcher(nil)).Walk(context.Background(), article("Orphan"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome != model.OutcomeDeadEnd || result.Hops != 0 {
			t.Errorf("expected DEAD_END at 0 hops, got %s at %d", result.Outcome, result.Hops)
		}
	})

	t.Run("infinite chain stops at the hop limit", func(t *testing.T) {
		t.Parallel()

		var fetched int
		chain := crawler.FetcherFunc(func(_ context.Context, u model.ArticleURL) (*crawler.ArticleContent, error) {
			fetched++
			var n int
			if _, err := fmt.Sscanf(strings.TrimPrefix(string(u), origin+"/wiki/Node_"), "%d", &n); err != nil {
				return nil, err
			}
			return renderArticle(u, []string{fmt.Sprintf("Node_%d", n+1)})
		})

		result, err := New(chain, WithMaxHops(3)).Walk(context.Background(), article("Node_0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Outcome != model.OutcomeHopLimitExceeded {
			t.Fatalf("expected HOP_LIMIT_EXCEEDED, got %s", result.Outcome)
		}
		if result.Hops != 3 {
			t.Errorf("expected 3 hops, got %d", result.Hops)
		}
		if result.MaxHops != 3 {
			t.Errorf("expected max hops 3, got %d", result.MaxHops)
		}
		if diff := cmp.Diff(articles("Node_0", "Node_1", "Node_2", "Node_3"), result.Visited); diff != "" {
			t.Errorf("visited mismatch (-want +got):\n%s", diff)
		}
		if fetched != 3 {
			t.Errorf("expected 3 fetches, got %d", fetched)
		}
	})

	t.Run("start article containing Philosophy is found without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := newGraphFetcher(nil)
		result, err := New(fetcher).Walk(context.Background(), article("Philosophy"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Found() || result.Hops != 0 {
			t.Errorf("expected FOUND at 0 hops, got %s at %d", result.Outcome, result.Hops)
		}
		if fetcher.total() != 0 {
			t.Errorf("expected no fetches, got %d", fetcher.total())
		}
	})
}

// TestWalkBacktracking verifies that exhausted branches are popped and the
// parent's next link is tried.
func TestWalkBacktracking(t *testing.T) {
	t.Parallel()

	fetcher := newGraphFetcher(map[string][]string{
		"A": {"B", "B", "C"},
		"B": {"D"},
		"D": {},
		"C": {"Philosophy"},
	})

	var hopsSeen []int
	w := New(fetcher, WithVisitFunc(func(_ model.ArticleURL, hops int) {
		hopsSeen = append(hopsSeen, hops)
	}))

	result, err := w.Walk(context.Background(), article("A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Found() || result.Hops != 2 {
		t.Fatalf("expected FOUND at 2 hops, got %s at %d", result.Outcome, result.Hops)
	}
	if diff := cmp.Diff(articles("A", "B", "D", "C", "Philosophy"), result.Visited); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(articles("A", "C", "Philosophy"), result.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 1, 2}, hopsSeen); diff != "" {
		t.Errorf("hop counts mismatch (-want +got):\n%s", diff)
	}
	for u, n := range fetcher.counts {
		if n != 1 {
			t.Errorf("expected %s to be fetched once, got %d", u, n)
		}
	}
}

// TestWalkErrors verifies that fetch failures and cancellation abort the walk.
func TestWalkErrors(t *testing.T) {
	t.Parallel()

	t.Run("fetch failure aborts the walk", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection reset")
		fetcher := newGraphFetcher(map[string][]string{
			"A": {"B", "C"},
			"C": {"Philosophy"},
		})
		fetcher.fail["B"] = boom

		result, err := New(fetcher).Walk(context.Background(), article("A"))
		if !errors.Is(err, boom) {
			t.Fatalf("expected fetch error, got %v", err)
		}
		if result == nil {
			t.Fatal("expected a partial result")
		}
		if result.Complete {
			t.Error("expected an incomplete result")
		}
		if result.Hops != 1 {
			t.Errorf("expected 1 hop, got %d", result.Hops)
		}
		if diff := cmp.Diff(articles("A", "B"), result.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cancellation is checked on each descent", func(t *testing.T) {
		t.Parallel()

		fetcher := newGraphFetcher(map[string][]string{
			"A": {"B"},
			"B": {"C"},
			"C": {"Philosophy"},
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := New(fetcher, WithVisitFunc(func(u model.ArticleURL, _ int) {
			if u == article("B") {
				cancel()
			}
		}))

		result, err := w.Walk(ctx, article("A"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if result.Complete {
			t.Error("expected an incomplete result")
		}
		if fetcher.counts[article("B")] != 0 {
			t.Error("B must not be fetched after cancellation")
		}
	})
}

// TestWalkerReuse verifies that walks do not share state.
func TestWalkerReuse(t *testing.T) {
	t.Parallel()

	fetcher := newGraphFetcher(map[string][]string{
		"A": {"B"},
		"B": {"Philosophy"},
	})
	w := New(fetcher)

	for i := 0; i < 2; i++ {
		result, err := w.Walk(context.Background(), article("A"))
		if err != nil {
			t.Fatalf("walk %d: unexpected error: %v", i, err)
		}
		if !result.Found() || result.Hops != 2 {
			t.Errorf("walk %d: expected FOUND at 2 hops, got %s at %d", i, result.Outcome, result.Hops)
		}
	}
}
