package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
)

type contextKey struct{}

type userKey struct{}

var loggerKey = contextKey{}

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// The second return value is false when the name is not recognized, in which
// case info is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Setup initializes the application's logging system: a JSON logger on
// stdout at the configured level, installed as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.LogLevel)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			slog.String("configured_level", cfg.LogLevel),
			slog.String("default_level", "info"))
	}

	return logger, nil
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithUser returns a copy of ctx carrying logger tagged with userID.
// ForUser recognizes the tag and does not repeat it.
func WithUser(ctx context.Context, logger *slog.Logger, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userKey{}, userID)
	return WithLogger(ctx, logger.With(slog.String("user_id", userID.String())))
}

// ForUser returns the context logger (or fallback) tagged with userID,
// unless the context logger already carries that user.
func ForUser(ctx context.Context, fallback *slog.Logger, userID uuid.UUID) *slog.Logger {
	log := FromContextOrDefault(ctx, fallback)
	if ctx != nil {
		if tagged, ok := ctx.Value(userKey{}).(uuid.UUID); ok && tagged == userID {
			if _, ok := Attached(ctx); ok {
				return log
			}
		}
	}
	return log.With(slog.String("user_id", userID.String()))
}

// Attached returns the logger stored in ctx and whether there was one.
func Attached(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	return l, ok && l != nil
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when
// ctx carries none. A nil fallback means slog.Default().
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := Attached(ctx); ok {
		return l
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
