// Package config provides configuration structures and utilities for philowalk.
// It defines walk limits, HTTP fetch settings and report preferences, their
// defaults and validation, and the optional YAML configuration file.
package config
