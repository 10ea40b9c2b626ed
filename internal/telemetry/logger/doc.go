// Package logger provides structured logging for keyman.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, configuration and the default logger
//   - context.go: per-invocation run IDs carried through context
//   - redact.go: masking of secret values
//
// Diagnostics go to stderr so that stdout only carries command output.
package logger
