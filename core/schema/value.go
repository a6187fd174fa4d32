package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// NoneLiteral is the text some models emit for a missing value. It is
// compared case-sensitively and always normalised to absent.
const NoneLiteral = "None"

// Value is a field value with an explicit presence marker. The zero Value is
// absent. A present Value holds one of string, int64, float64, []string or
// time.Time; the held type may differ from the field's declared type until
// post-processing (e.g. an integer field holding the string "10").
type Value struct {
	raw     any
	present bool
}

// Absent returns the absent value.
func Absent() Value {
	return Value{}
}

// Of wraps v as a present value, normalising Go number widths to int64 and
// float64. A nil v or the string "None" yields an absent value. Types outside
// the supported set are stored in their fmt representation.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Absent()
	case Value:
		return x
	case string:
		if x == NoneLiteral {
			return Absent()
		}
		return Value{raw: x, present: true}
	case int:
		return Value{raw: int64(x), present: true}
	case int32:
		return Value{raw: int64(x), present: true}
	case int64:
		return Value{raw: x, present: true}
	case float32:
		return Value{raw: float64(x), present: true}
	case float64:
		return Value{raw: x, present: true}
	case []string:
		return Value{raw: slices.Clone(x), present: true}
	case time.Time:
		return Value{raw: x, present: true}
	default:
		return Value{raw: fmt.Sprint(x), present: true}
	}
}

// IsAbsent reports whether no value was extracted.
func (v Value) IsAbsent() bool {
	return !v.present
}

// Raw returns the held value, or nil when absent.
func (v Value) Raw() any {
	if !v.present {
		return nil
	}
	if list, ok := v.raw.([]string); ok {
		return slices.Clone(list)
	}
	return v.raw
}

// Str returns the held string.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.present
}

// Int returns the held integer.
func (v Value) Int() (int64, bool) {
	i, ok := v.raw.(int64)
	return i, ok && v.present
}

// Float returns the held float.
func (v Value) Float() (float64, bool) {
	f, ok := v.raw.(float64)
	return f, ok && v.present
}

// Number returns the held integer or float as a float64.
func (v Value) Number() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch x := v.raw.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// List returns a copy of the held string list.
func (v Value) List() ([]string, bool) {
	l, ok := v.raw.([]string)
	if !ok || !v.present {
		return nil, false
	}
	return slices.Clone(l), true
}

// Time returns the held timestamp.
func (v Value) Time() (time.Time, bool) {
	t, ok := v.raw.(time.Time)
	return t, ok && v.present
}

// Equal reports whether two values have the same presence and content.
func (v Value) Equal(other Value) bool {
	if v.present != other.present {
		return false
	}
	if !v.present {
		return true
	}
	switch a := v.raw.(type) {
	case []string:
		b, ok := other.raw.([]string)
		return ok && slices.Equal(a, b)
	case time.Time:
		b, ok := other.raw.(time.Time)
		return ok && a.Equal(b)
	default:
		return v.raw == other.raw
	}
}

// String renders the value for logs and tables.
func (v Value) String() string {
	if !v.present {
		return "<absent>"
	}
	switch x := v.raw.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}

// MarshalJSON encodes absent as null and timestamps as RFC 3339.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	if t, ok := v.raw.(time.Time); ok {
		return json.Marshal(t.Format(time.RFC3339))
	}
	return json.Marshal(v.raw)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses the timestamp layouts models commonly produce. Values
// without a zone are read as UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValueFromRaw converts a decoded JSON or YAML value into a Value for the
// given field. Conversion follows the declared type where it can be done
// without guessing:
//
//   - nil and "None" become absent
//   - string fields stringify numbers, booleans and nested structures
//   - integer fields keep integral numbers as int64; non-integral numbers and
//     strings are kept as strings for the post-processor to coerce
//   - float fields keep numbers as float64 and strings as strings
//   - list fields stringify their elements, dropping null/"None" entries; a
//     lone scalar becomes a one-element list
//   - datetime fields parse strings with [ParseTime]; unparseable text is absent
//
// ValueFromRaw never fails; anything it cannot represent is absent.
func ValueFromRaw(field Field, raw any) Value {
	if raw == nil {
		return Absent()
	}
	if s, ok := raw.(string); ok && s == NoneLiteral {
		return Absent()
	}

	switch field.Type {
	case TypeString:
		s, ok := scalarText(raw)
		if !ok {
			return Absent()
		}
		return Of(s)

	case TypeInteger:
		switch x := raw.(type) {
		case json.Number:
			if i, err := x.Int64(); err == nil {
				return Of(i)
			}
			return Of(x.String())
		case int:
			return Of(x)
		case int64:
			return Of(x)
		case uint64:
			if x <= math.MaxInt64 {
				return Of(int64(x))
			}
			return Of(strconv.FormatUint(x, 10))
		case float64:
			if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
				return Of(int64(x))
			}
			return Of(strconv.FormatFloat(x, 'f', -1, 64))
		case string:
			return Of(x)
		default:
			return Absent()
		}

	case TypeFloat:
		switch x := raw.(type) {
		case json.Number:
			if f, err := x.Float64(); err == nil {
				return Of(f)
			}
			return Of(x.String())
		case int:
			return Of(float64(x))
		case int64:
			return Of(float64(x))
		case uint64:
			return Of(float64(x))
		case float64:
			return Of(x)
		case string:
			return Of(x)
		default:
			return Absent()
		}

	case TypeStringList:
		switch x := raw.(type) {
		case []any:
			out := make([]string, 0, len(x))
			for _, item := range x {
				if item == nil {
					continue
				}
				s, ok := scalarText(item)
				if !ok || s == NoneLiteral {
					continue
				}
				out = append(out, s)
			}
			return Of(out)
		case []string:
			return Of(x)
		default:
			s, ok := scalarText(raw)
			if !ok {
				return Absent()
			}
			return Of([]string{s})
		}

	case TypeDatetime:
		switch x := raw.(type) {
		case time.Time:
			return Of(x)
		case string:
			if t, ok := ParseTime(x); ok {
				return Of(t)
			}
			return Absent()
		default:
			return Absent()
		}
	}

	return Absent()
}

// scalarText renders a decoded scalar as text. Nested maps and slices are
// re-encoded as compact JSON.
func scalarText(raw any) (string, bool) {
	switch x := raw.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case map[string]any, []any:
		encoded, err := json.Marshal(x)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	default:
		return "", false
	}
}
