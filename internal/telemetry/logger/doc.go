// Package logger provides structured logging for BetLink.
//
// This package wraps log/slog:
//
//   - logger.go: handler configuration and level control
//   - context.go: context-aware logging with call correlation IDs
//   - redact.go: sensitive data redaction
//
// Session tokens, passwords and application keys are masked before
// they reach any log output.
package logger
