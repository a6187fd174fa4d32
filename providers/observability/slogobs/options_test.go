package slogobs

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
)

func TestNewSettings_Defaults(t *testing.T) {
	for _, name := range []string{EnvLogFormat, envGenericLogFormat, EnvLogLevel, envGenericLogLevel} {
		t.Setenv(name, "")
	}

	s := newSettings()

	if s.format != FormatCompact {
		t.Errorf("format = %v, want %v", s.format, FormatCompact)
	}
	if s.level != slog.LevelInfo {
		t.Errorf("level = %v, want %v", s.level, slog.LevelInfo)
	}
	if s.output != os.Stderr {
		t.Error("output should default to os.Stderr")
	}
	if s.colors || s.logger != nil {
		t.Errorf("colors = %v, logger = %v; want zero values", s.colors, s.logger)
	}
}

func TestNewSettings_EnvDefaults(t *testing.T) {
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogLevel, "debug")

	s := newSettings()
	if s.format != FormatJSON || s.level != slog.LevelDebug {
		t.Errorf("settings = {%v %v}, want {json DEBUG}", s.format, s.level)
	}

	s = newSettings(WithLevel(slog.LevelWarn))
	if s.level != slog.LevelWarn {
		t.Errorf("explicit level = %v, want WARN", s.level)
	}
}

func TestNewSettings_Options(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	s := newSettings(
		WithFormat(FormatPretty),
		WithLevel(slog.LevelError),
		WithOutput(buf),
		WithColors(true),
		WithLogger(logger),
	)

	if s.format != FormatPretty {
		t.Errorf("format = %v, want %v", s.format, FormatPretty)
	}
	if s.level != slog.LevelError {
		t.Errorf("level = %v, want %v", s.level, slog.LevelError)
	}
	if s.output != buf {
		t.Error("WithOutput did not set the writer")
	}
	if !s.colors {
		t.Error("WithColors(true) did not enable colours")
	}
	if s.logger != logger {
		t.Error("WithLogger did not set the logger")
	}

	WithColors(false)(s)
	if s.colors {
		t.Error("WithColors(false) did not disable colours")
	}
}
