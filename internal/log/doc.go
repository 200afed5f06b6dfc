// Package log builds philowalk's slog loggers.
//
// Loggers write to stderr so that stdout carries only the walk itself. Every
// logger is wrapped in a SecureHandler, which masks credentials before they
// reach the output: configured request headers may carry Wikimedia bearer
// tokens, and fetch errors can echo them back.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("descending", "url", u, "hops", hops)
package log
