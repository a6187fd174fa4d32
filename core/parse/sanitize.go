package parse

import "strings"

// CleanJSONStr normalises a JSON-like fragment so a strict parser has a
// chance to accept it. In order it:
//
//  1. trims surrounding whitespace
//  2. removes // line comments
//  3. removes /* block */ comments, including multi-line ones
//  4. drops commas that directly precede a closing brace or bracket
//  5. drops a '.' directly adjacent to a closing brace
//
// Comment markers, commas and periods inside string literals are left alone.
// The passes repeat until the text stops changing, so the function is
// idempotent: CleanJSONStr(CleanJSONStr(s)) == CleanJSONStr(s).
func CleanJSONStr(s string) string {
	for {
		next := cleanOnce(s)
		if next == s {
			return next
		}
		s = next
	}
}

func cleanOnce(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = stripComments(s)
	s = stripTrailingCommas(s)
	s = stripDotBeforeBrace(s)
	return strings.TrimSpace(s)
}

// stripComments removes line and block comments outside string literals.
// An unterminated block comment runs to the end of the input.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				end := strings.IndexByte(s[i:], '\n')
				if end < 0 {
					return b.String()
				}
				// keep the newline itself
				i += end - 1
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					return b.String()
				}
				i += 2 + end + 1
				continue
			}
		}

		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stripTrailingCommas drops a comma when only whitespace separates it from a
// closing brace or bracket.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}

		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stripDotBeforeBrace drops a '.' immediately followed by '}'.
func stripDotBeforeBrace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == '.' && i+1 < len(s) && s[i+1] == '}' {
			continue
		}
		if c == '"' {
			inString = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
