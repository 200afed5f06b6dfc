package model

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ArticleURL is an absolute URL identifying a Wikipedia article.
// It never carries a "#fragment" part.
type ArticleURL string

// String returns the URL as a plain string.
func (u ArticleURL) String() string {
	return string(u)
}

// Title returns the human-readable article title derived from the last path
// segment: percent-decoded, underscores turned into spaces and NFC-normalized.
// If the segment cannot be decoded it is returned as-is.
func (u ArticleURL) Title() string {
	s := string(u)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	segment := s[strings.LastIndex(s, "/")+1:]

	decoded, err := url.PathUnescape(segment)
	if err != nil {
		decoded = segment
	}
	return norm.NFC.String(strings.ReplaceAll(decoded, "_", " "))
}
