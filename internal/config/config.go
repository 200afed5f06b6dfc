package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/philowalk/internal/crawler"
	"github.com/nao1215/philowalk/internal/walker"
	"github.com/nao1215/philowalk/internal/wiki"
)

// AppName is the application name used for XDG directory paths.
const AppName = "philowalk"

// Report formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Default configuration values.
const (
	// DefaultMaxHops is the hop budget of a walk.
	DefaultMaxHops = walker.DefaultMaxHops

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = crawler.DefaultTimeout

	// DefaultRetries is how many times a transient fetch failure is retried.
	DefaultRetries = crawler.DefaultRetries

	// DefaultRetryWait is the base wait between retries.
	DefaultRetryWait = crawler.DefaultRetryWait

	// DefaultDelay is waited before each descent. Zero keeps the walk as fast
	// as the network allows; a single sequential client stays well within
	// Wikimedia's limits.
	DefaultDelay = time.Duration(0)

	// DefaultUserAgent identifies philowalk in HTTP requests.
	DefaultUserAgent = crawler.DefaultUserAgent

	// DefaultMaxBodySize limits the response body size read per article.
	DefaultMaxBodySize = crawler.DefaultMaxBodySize

	// DefaultFormat is the report format.
	DefaultFormat = FormatText
)

// Config holds all configuration options for philowalk. It is populated from
// the config file and CLI flags and passed down explicitly.
type Config struct {
	// StartURL is the article the walk begins at.
	StartURL string

	// MaxHops is the hop budget.
	MaxHops int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Retries is how many times a transient fetch failure is retried.
	Retries int

	// RetryWait is the base wait between retries; attempt n waits n times this.
	RetryWait time.Duration

	// Delay is waited before each descent.
	Delay time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Headers are extra request headers, e.g. an Authorization token for
	// higher Wikimedia rate limits.
	Headers map[string]string

	// Origin resolves site-relative article links.
	Origin string

	// MaxBodySize limits the bytes read per article.
	MaxBodySize int64

	// Verbose enables debug logging.
	Verbose bool

	// Format selects the report format: text, json or markdown.
	Format string

	// ReportFile, when set, receives the report instead of stdout.
	ReportFile string

	// ConfigFilePath is the explicitly requested config file, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxHops:     DefaultMaxHops,
		Timeout:     DefaultTimeout,
		Retries:     DefaultRetries,
		RetryWait:   DefaultRetryWait,
		Delay:       DefaultDelay,
		UserAgent:   DefaultUserAgent,
		Headers:     make(map[string]string),
		Origin:      wiki.DefaultOrigin,
		MaxBodySize: DefaultMaxBodySize,
		Format:      DefaultFormat,
	}
}

// XDGConfigDir returns the XDG config directory for philowalk.
// On Linux: ~/.config/philowalk
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// The start URL is checked first so an unacceptable entry point is reported
// before anything else.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}
	if err := wiki.ValidateStartURL(c.StartURL); err != nil {
		return err
	}

	if c.MaxHops <= 0 {
		return ErrInvalidMaxHops
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Retries < 0 {
		return ErrInvalidRetries
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if !strings.HasPrefix(c.Origin, "http://") && !strings.HasPrefix(c.Origin, "https://") {
		return ErrInvalidOrigin
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}

	return nil
}
