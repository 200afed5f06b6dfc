package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/philowalk/internal/model"
)

// Fetcher defaults.
const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies philowalk to Wikimedia, whose API etiquette
	// asks for a descriptive agent with contact information.
	DefaultUserAgent = "philowalk/1.0 (+https://github.com/nao1215/philowalk)"

	// DefaultMaxBodySize caps how much of a response is read. Long articles
	// render to a few megabytes of HTML.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// DefaultRetries is how many times a transient failure is retried.
	DefaultRetries = 2

	// DefaultRetryWait is the base wait between retries; attempt n waits n times this.
	DefaultRetryWait = 1 * time.Second
)

// PageFetcher retrieves the content of one article.
type PageFetcher interface {
	Fetch(ctx context.Context, u model.ArticleURL) (*ArticleContent, error)
}

// FetcherFunc adapts a plain function to the PageFetcher interface.
type FetcherFunc func(ctx context.Context, u model.ArticleURL) (*ArticleContent, error)

// Fetch calls f(ctx, u).
func (f FetcherFunc) Fetch(ctx context.Context, u model.ArticleURL) (*ArticleContent, error) {
	return f(ctx, u)
}

// HTTPFetcher fetches articles over HTTP and parses them into ArticleContent.
type HTTPFetcher struct {
	// client performs the requests.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// headers are extra request headers, e.g. an Authorization token.
	headers map[string]string

	// maxBodySize limits how many bytes of a response are parsed.
	maxBodySize int64

	// retries is how many times a transient failure is retried.
	retries int

	// retryWait is the base wait between attempts.
	retryWait time.Duration

	logger *slog.Logger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithHeaders adds custom request headers.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// WithRetries sets how many times transient failures are retried and the base
// wait between attempts. Zero retries disables retrying.
func WithRetries(retries int, wait time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.retries = retries
		f.retryWait = wait
	}
}

// WithFetcherLogger sets the logger used for retry diagnostics.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

// NewHTTPFetcher creates an HTTPFetcher. A nil client is replaced by one with
// DefaultTimeout.
func NewHTTPFetcher(client *http.Client, opts ...FetcherOption) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	f := &HTTPFetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		retries:     DefaultRetries,
		retryWait:   DefaultRetryWait,
		logger:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch downloads and parses the article at u, retrying transient failures
// (transport errors, 429 and 5xx) up to the configured number of times.
func (f *HTTPFetcher) Fetch(ctx context.Context, u model.ArticleURL) (*ArticleContent, error) {
	var lastErr error

	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			wait := f.retryWait * time.Duration(attempt)
			f.logger.Debug("retrying article fetch",
				"url", u,
				"attempt", attempt,
				"wait", wait,
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		content, err := f.fetchOnce(ctx, u)
		if err == nil {
			return content, nil
		}
		if ctx.Err() != nil || !isTransient(err) {
			return nil, err
		}
		lastErr = err
	}

	f.logger.Warn("giving up on article fetch",
		"url", u,
		"attempts", f.retries+1,
		"error", lastErr,
	)
	return nil, lastErr
}

// fetchOnce performs a single request.
func (f *HTTPFetcher) fetchOnce(ctx context.Context, u model.ArticleURL) (*ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", u, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrBodyTooLarge, u, f.maxBodySize)
	}

	return ParseArticle(u, bytes.NewReader(body))
}

// isTransient reports whether err is worth retrying.
func isTransient(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Transient()
	}
	if errors.Is(err, ErrContentNotFound) || errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	// Anything else came out of the transport layer, client timeouts included.
	// Caller cancellation is checked separately in Fetch.
	return true
}
