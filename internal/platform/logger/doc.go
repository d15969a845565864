// Package logger provides structured logging functionality for the
// application: a JSON slog handler configured from server settings, and
// helpers for carrying a request-scoped logger through context.
package logger
