package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/leofalp/fieldex/core/schema"
)

// Option configures the partial parser.
type Option func(*options)

type options struct {
	repair bool
}

// WithRepair adds a last-resort stage that runs the text through jsonrepair
// when the bounded tolerant pass fails. It recovers far more (unquoted keys,
// single quotes, dangling keys filled with null) at the cost of sometimes
// inventing structure, so it is off by default.
func WithRepair() Option {
	return func(o *options) {
		o.repair = true
	}
}

func applyOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ParsePartialJSON decodes s as a JSON object. A strict decode is tried
// first; if it fails, a single tolerant retry drops a dangling trailing comma
// and appends whatever closing quote, brackets and braces are needed to
// balance a truncated object. Numbers are decoded as [json.Number].
//
// Input that is not an object, is unbalanced in the other direction, or ends
// on a key without a value yields ok == false. That is a normal outcome for
// generated text, not an error.
func ParsePartialJSON(s string, opts ...Option) (map[string]any, bool) {
	o := applyOptions(opts...)

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	if obj, err := decodeObject(s); err == nil {
		return obj, true
	}

	if closed, ok := closeTruncated(s); ok {
		if obj, err := decodeObject(closed); err == nil {
			return obj, true
		}
	}

	if o.repair {
		repaired, err := jsonrepair.JSONRepair(s)
		if err == nil {
			if obj, err := decodeObject(repaired); err == nil {
				return obj, true
			}
		}
	}

	return nil, false
}

// GetPartialJSON parses s and builds a record of sc from it. Only keys that
// are schema fields are copied; each value is unwrapped from a
// {"type": ..., "value": ...} envelope if the model produced one and then
// converted with [schema.ValueFromRaw], which turns null and "None" into
// absent. Fields missing from s stay absent.
func GetPartialJSON(s string, sc *schema.Schema, opts ...Option) (*schema.Record, bool) {
	obj, ok := ParsePartialJSON(s, opts...)
	if !ok {
		return nil, false
	}

	record := schema.NewRecord(sc)
	for _, field := range sc.Fields {
		raw, present := obj[field.Name]
		if !present {
			continue
		}
		// Set cannot fail: field comes from sc.
		_ = record.Set(field.Name, schema.ValueFromRaw(field, recursiveUnwrap(raw)))
	}
	return record, true
}

var errNotObject = errors.New("top-level value is not an object")

// decodeObject strictly decodes exactly one JSON object from s.
func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

// closeTruncated completes a truncated object with the minimal closing
// tokens. A complete object followed by one dangling comma is cut back to
// the object. It refuses input that does not start with '{', closes more
// than it opens, or stops right after a key's colon.
func closeTruncated(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}

	stack := make([]byte, 0, 8)
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
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			top := stack[len(stack)-1]
			if (top == '{' && c != '}') || (top == '[' && c != ']') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 && i != len(s)-1 {
				// a complete object may only be followed by one dangling comma
				rest := strings.TrimSpace(s[i+1:])
				if strings.TrimSpace(strings.TrimPrefix(rest, ",")) != "" {
					return "", false
				}
				s = s[:i+1]
			}
		}
	}

	var b bytes.Buffer
	b.WriteString(s)

	if inString {
		if escaped {
			// drop the dangling backslash so the closing quote is not escaped
			b.Truncate(b.Len() - 1)
		}
		b.WriteByte('"')
	} else {
		trimmed := strings.TrimRight(b.String(), " \t\r\n")
		trimmed = strings.TrimSuffix(trimmed, ",")
		trimmed = strings.TrimRight(trimmed, " \t\r\n")
		if strings.HasSuffix(trimmed, ":") {
			return "", false
		}
		b.Reset()
		b.WriteString(trimmed)
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String(), true
}
