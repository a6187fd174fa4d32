// Package slogobs implements observability.Provider on log/slog.
//
// Spans and metric updates become DEBUG log lines; counters and histogram
// totals are also kept in memory and can be read back, which is what the
// CLI and the tests rely on. Output goes through [Handler] in compact,
// pretty or JSON form. FIELDEX_LOG_LEVEL and FIELDEX_LOG_FORMAT set the
// defaults; options override them.
package slogobs
