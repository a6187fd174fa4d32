package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/fieldex/providers/observability"
)

// StartSpan logs "Span started" at DEBUG and returns a context carrying the
// span. End logs the duration together with every attribute collected since.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	s := &span{
		name:   name,
		start:  time.Now(),
		logger: o.logger,
		attrs:  append([]observability.Attribute(nil), attrs...),
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Span started", toSlog(attrs, s.head("span.start")...)...)
	return observability.ContextWithSpan(ctx, s), s
}

type span struct {
	name   string
	start  time.Time
	logger *slog.Logger

	mu    sync.Mutex
	attrs []observability.Attribute
}

func (s *span) head(event string) []slog.Attr {
	return []slog.Attr{slog.String("span", s.name), slog.String("event", event)}
}

func (s *span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := append(s.head("span.end"), slog.Duration("duration", time.Since(s.start)))
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span ended", toSlog(s.attrs, lead...)...)
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	status := "unset"
	switch code {
	case observability.StatusOK:
		status = "ok"
	case observability.StatusError:
		status = "error"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, status))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

// RecordError keeps err on the span and logs it at ERROR right away.
func (s *span) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.attrs = append(s.attrs, observability.Error(err))
	s.mu.Unlock()

	s.logger.LogAttrs(context.Background(), slog.LevelError, "Span error",
		append(s.head("error"), slog.String("error", err.Error()))...)
}

func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span event", toSlog(attrs, s.head(name)...)...)
}
