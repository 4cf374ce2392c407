// Package logger provides structured logging for the application.
//
// It configures a JSON log/slog logger from the server configuration and
// carries request-scoped loggers through context.Context.
package logger
