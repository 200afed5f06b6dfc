package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".philowalk"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .philowalk configuration file.
// Zero values mean "not set" and leave the defaults alone.
type File struct {
	MaxHops     int               `yaml:"maxHops,omitempty"`
	Timeout     time.Duration     `yaml:"timeout,omitempty"`
	Retries     *int              `yaml:"retries,omitempty"`
	RetryWait   time.Duration     `yaml:"retryWait,omitempty"`
	Delay       time.Duration     `yaml:"delay,omitempty"`
	UserAgent   string            `yaml:"userAgent,omitempty"`
	Origin      string            `yaml:"origin,omitempty"`
	MaxBodySize int64             `yaml:"maxBodySize,omitempty"`
	Format      string            `yaml:"format,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Headers == nil {
		cf.Headers = make(map[string]string)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .philowalk in the current directory
// 3. Look for .philowalk in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Apply copies every value set in the file onto c. Headers are merged, with
// the file winning on conflicts.
func (c *Config) Apply(cf *File) {
	if cf == nil {
		return
	}
	if cf.MaxHops != 0 {
		c.MaxHops = cf.MaxHops
	}
	if cf.Timeout != 0 {
		c.Timeout = cf.Timeout
	}
	if cf.Retries != nil {
		c.Retries = *cf.Retries
	}
	if cf.RetryWait != 0 {
		c.RetryWait = cf.RetryWait
	}
	if cf.Delay != 0 {
		c.Delay = cf.Delay
	}
	if cf.UserAgent != "" {
		c.UserAgent = cf.UserAgent
	}
	if cf.Origin != "" {
		c.Origin = cf.Origin
	}
	if cf.MaxBodySize != 0 {
		c.MaxBodySize = cf.MaxBodySize
	}
	if cf.Format != "" {
		c.Format = cf.Format
	}
	if len(cf.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		for k, v := range cf.Headers {
			c.Headers[k] = v
		}
	}
}
