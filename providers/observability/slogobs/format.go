package slogobs

import (
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is a single-line format with JSON attributes (default).
	// Example: 2025-11-03 10:40:35 DEBUG Field accepted → {"fieldex.field":"title"}
	FormatCompact Format = "compact"

	// FormatPretty is a multi-line format with one attribute per line.
	// Example:
	// 2025-11-03 10:40:35 DEBUG  Field accepted
	//                    └─ fieldex.field: title
	FormatPretty Format = "pretty"

	// FormatJSON is one JSON object per line, for log aggregation.
	// Example: {"time":"2025-11-03T10:40:35","level":"DEBUG","msg":"Field accepted","fieldex.field":"title"}
	FormatJSON Format = "json"
)

// ParseFormat parses a format string and returns the corresponding Format.
// If the format is invalid, it returns FormatCompact (default).
func ParseFormat(s string) Format {
	switch f := Format(strings.TrimSpace(strings.ToLower(s))); f {
	case FormatCompact, FormatPretty, FormatJSON:
		return f
	default:
		return FormatCompact
	}
}

// Environment variables consulted when no explicit format or level is given.
// The FIELDEX_ prefixed variable wins over the generic one.
const (
	EnvLogFormat        = "FIELDEX_LOG_FORMAT"
	EnvLogLevel         = "FIELDEX_LOG_LEVEL"
	envGenericLogFormat = "LOG_FORMAT"
	envGenericLogLevel  = "LOG_LEVEL"
)

// GetFormatFromEnv returns the format named by FIELDEX_LOG_FORMAT or,
// failing that, LOG_FORMAT. It defaults to FormatCompact.
func GetFormatFromEnv() Format {
	if format := firstEnv(EnvLogFormat, envGenericLogFormat); format != "" {
		return ParseFormat(format)
	}
	return FormatCompact
}

// firstEnv returns the first non-empty value among the named variables.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}
