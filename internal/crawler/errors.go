package crawler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nao1215/philowalk/internal/model"
)

// Article fetch errors.
var (
	// ErrUnexpectedStatus is returned when the server answers with anything
	// other than 200 OK. The concrete error is a *StatusError.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrContentNotFound is returned when the page has no main content
	// container, which happens for special pages and non-article responses.
	ErrContentNotFound = errors.New("main content container not found")

	// ErrBodyTooLarge is returned when a response exceeds the configured
	// maximum body size. A truncated article would yield the wrong links.
	ErrBodyTooLarge = errors.New("response body too large")
)

// StatusError describes a non-200 response.
type StatusError struct {
	// URL is the article that was requested.
	URL model.ArticleURL

	// StatusCode is the HTTP status the server returned.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s for %s",
		ErrUnexpectedStatus, e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Is makes errors.Is(err, ErrUnexpectedStatus) hold for every StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Transient reports whether retrying the request may succeed.
func (e *StatusError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}
