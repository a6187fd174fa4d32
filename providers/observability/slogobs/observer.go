package slogobs

import (
	"context"
	"log/slog"

	"github.com/leofalp/fieldex/providers/observability"
)

// Observer is an observability.Provider that writes everything through one
// slog.Logger.
type Observer struct {
	logger  *slog.Logger
	metrics *registry
}

var _ observability.Provider = (*Observer)(nil)

// New builds an observer. Without options it reads FIELDEX_LOG_LEVEL and
// FIELDEX_LOG_FORMAT and writes compact INFO lines to stderr:
//
//	observer := slogobs.New(
//	    slogobs.WithFormat(slogobs.FormatJSON),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
func New(opts ...Option) *Observer {
	s := newSettings(opts...)

	logger := s.logger
	if logger == nil {
		logger = slog.New(NewHandler(&HandlerOptions{
			Format: s.format,
			Level:  s.level,
			Output: s.output,
			Colors: s.colors,
		}))
	}
	return &Observer{logger: logger, metrics: newRegistry(logger)}
}

// Logger returns the underlying logger.
func (o *Observer) Logger() *slog.Logger {
	return o.logger
}

// Trace logs below DEBUG; it only shows with [LevelTrace].
func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, LevelTrace, msg, toSlog(attrs)...)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, msg, toSlog(attrs)...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, msg, toSlog(attrs)...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelWarn, msg, toSlog(attrs)...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelError, msg, toSlog(attrs)...)
}

// toSlog converts attributes, prepending any fixed leading attrs.
func toSlog(attrs []observability.Attribute, lead ...slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(lead)+len(attrs))
	out = append(out, lead...)
	for _, a := range attrs {
		out = append(out, slog.Any(a.Key, a.Value))
	}
	return out
}
