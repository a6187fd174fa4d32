package slogobs

import (
	"io"
	"log/slog"
	"os"
)

// Option configures [New].
type Option func(*settings)

type settings struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	// logger, when set, replaces the handler built from the fields above.
	logger *slog.Logger
}

// WithFormat picks the line format.
func WithFormat(format Format) Option {
	return func(s *settings) { s.format = format }
}

// WithLevel sets the minimum level. Use [LevelTrace] to see everything.
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithOutput redirects log lines, os.Stderr by default.
func WithOutput(output io.Writer) Option {
	return func(s *settings) { s.output = output }
}

// WithColors forces ANSI colours on or off for the compact and pretty
// formats. Without it colours follow whether the output is a terminal.
func WithColors(enabled bool) Option {
	return func(s *settings) { s.colors = enabled }
}

// WithLogger logs through an existing logger. Format, level, output and
// colour options are then ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func newSettings(opts ...Option) *settings {
	s := &settings{
		format: GetFormatFromEnv(),
		level:  GetLogLevelFromEnv(),
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
