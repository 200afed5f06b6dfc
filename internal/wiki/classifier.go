package wiki

import (
	"regexp"
	"strings"

	"github.com/nao1215/philowalk/internal/model"
)

// DefaultOrigin is the site origin relative article links are resolved against.
const DefaultOrigin = "https://en.wikipedia.org"

// PhilosophyMarker is the substring whose presence in an article URL ends a walk.
const PhilosophyMarker = "Philosophy"

var (
	// reservedNamespace matches site-relative links into namespaces that never
	// hold encyclopedia articles.
	reservedNamespace = regexp.MustCompile(`^/wiki/(Help|File|Wikipedia):`)

	// startURLPattern is the accepted shape of a user-supplied entry point.
	startURLPattern = regexp.MustCompile(`^https?://en.wikipedia.org/wiki/`)
)

const (
	articlePathPrefix = "/wiki/"
	mediaUploadHost   = "upload.wikimedia.org"
	wiktionaryHost    = "en.wiktionary.org"
)

// IsQualifyingLink reports whether target should be followed as an article link.
// It returns false for empty targets, reserved namespaces (Help, File, Wikipedia),
// media uploads and Wiktionary, and true for everything else.
func IsQualifyingLink(target string) bool {
	switch {
	case target == "":
		return false
	case reservedNamespace.MatchString(target):
		return false
	case strings.Contains(target, mediaUploadHost):
		return false
	case strings.Contains(target, wiktionaryHost):
		return false
	}
	return true
}

// StripFragment drops everything from the first '#' onward.
func StripFragment(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[:i]
	}
	return href
}

// NormalizeLink strips the fragment from rawHref and resolves it against
// siteOrigin when it is site-relative. Protocol-relative hrefs ("//host/...")
// borrow the scheme of siteOrigin. Absolute hrefs are returned unchanged
// apart from the fragment.
func NormalizeLink(rawHref, siteOrigin string) model.ArticleURL {
	href := StripFragment(rawHref)

	if strings.HasPrefix(href, "//") {
		scheme := "https:"
		if i := strings.Index(siteOrigin, "//"); i > 0 {
			scheme = siteOrigin[:i]
		}
		return model.ArticleURL(scheme + href)
	}
	if strings.HasPrefix(href, "/") {
		return model.ArticleURL(strings.TrimSuffix(siteOrigin, "/") + href)
	}
	return model.ArticleURL(href)
}

// IsStartURLAcceptable reports whether rawURL may be used as the entry point of
// a walk: it must be an en.wikipedia.org article URL whose last path segment is
// itself a qualifying link. The segment is also checked re-rooted under /wiki/
// so that namespaced entry points such as "File:Example.png" are rejected.
func IsStartURLAcceptable(rawURL string) bool {
	if !startURLPattern.MatchString(rawURL) {
		return false
	}
	segment := rawURL[strings.LastIndex(rawURL, "/")+1:]
	return IsQualifyingLink(segment) && IsQualifyingLink(articlePathPrefix+segment)
}

// ValidateStartURL returns ErrInvalidStartURL when rawURL is not acceptable.
func ValidateStartURL(rawURL string) error {
	if !IsStartURLAcceptable(rawURL) {
		return ErrInvalidStartURL
	}
	return nil
}

// ContainsPhilosophy reports whether u names a Philosophy article.
// The check is a case-sensitive substring match, so "Philosophy_of_mind"
// counts as well.
func ContainsPhilosophy(u model.ArticleURL) bool {
	return strings.Contains(string(u), PhilosophyMarker)
}
