package parse

import "regexp"

const (
	quotedPattern = `"(?:[^"\\]|\\.)*"`
	numberPattern = `-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`
	valuePattern  = `(?:` + quotedPattern + `|null|true|false|` + numberPattern + `|\{.*\}|\[.*\])`
)

// jsonLikePattern: an opening brace, a first member made of a quoted key, a
// colon and a value, followed by a comma or closing brace; then anything, as
// long as the text finally ends on a brace or comma.
var jsonLikePattern = regexp.MustCompile(
	`(?s)^\s*\{\s*` + quotedPattern + `\s*:\s*` + valuePattern + `\s*[,}](?:.*[,}])?\s*$`,
)

// IsJSONLike reports whether s is shaped like a single, possibly truncated,
// JSON object. It is a cheap pre-filter: it accepts an object whose final
// brace is missing as long as the text stops after a comma, and rejects
// unquoted keys, missing colons and bare values. Anything it lets through is
// still checked by [ParsePartialJSON].
func IsJSONLike(s string) bool {
	return jsonLikePattern.MatchString(s)
}
