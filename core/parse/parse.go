package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs converts content into T.
//
// Numeric and boolean kinds are parsed directly with strconv after trimming
// surrounding whitespace; when that fails and content is a
// {"type": ..., "value": ...} envelope, the wrapped value is parsed instead.
// Strings are returned unchanged unless they are such an envelope. Every
// other kind (structs, maps, slices) goes through encoding/json, with a
// jsonrepair pass and envelope unwrapping as fallbacks.
//
// Example usage:
//
//	n, err := ParseStringAs[int64]("10")     // 10
//	f, err := ParseStringAs[float64](" 2.5") // 2.5
//	_, err = ParseStringAs[int64]("invalid") // error
//	ids, err := ParseStringAs[[]int](`[1, 2, 3,]`)
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	switch target.Kind() {
	case reflect.String:
		if strings.HasPrefix(strings.TrimSpace(content), "{") {
			if unwrapped, err := tryUnwrapPrimitive(content); err == nil {
				target.SetString(unwrapped)
				return result, nil
			}
		}
		target.SetString(content)
		return result, nil

	case reflect.Bool:
		err := parseScalar(content, func(s string) error {
			v, err := strconv.ParseBool(s)
			if err == nil {
				target.SetBool(v)
			}
			return err
		})
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		return result, nil

	case reflect.Float32, reflect.Float64:
		err := parseScalar(content, func(s string) error {
			v, err := strconv.ParseFloat(s, target.Type().Bits())
			if err == nil {
				target.SetFloat(v)
			}
			return err
		})
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		err := parseScalar(content, func(s string) error {
			v, err := strconv.ParseInt(s, 10, target.Type().Bits())
			if err == nil {
				target.SetInt(v)
			}
			return err
		})
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		err := parseScalar(content, func(s string) error {
			v, err := strconv.ParseUint(s, 10, target.Type().Bits())
			if err == nil {
				target.SetUint(v)
			}
			return err
		})
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		return result, nil

	default:
		if err := json.Unmarshal([]byte(content), &result); err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: %w", result, repairErr)
		}
		err := json.Unmarshal([]byte(repaired), &result)
		if err == nil {
			return result, nil
		}

		// Models sometimes answer with the schema instead of the data.
		if unwrapped, unwrapErr := unwrapSchemaValues(repaired); unwrapErr == nil {
			if err = json.Unmarshal([]byte(unwrapped), &result); err == nil {
				return result, nil
			}
		}
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
	}
}

// parseScalar runs parse on the trimmed content and, if that fails, on the
// value unwrapped from a schema envelope.
func parseScalar(content string, parse func(string) error) error {
	err := parse(strings.TrimSpace(content))
	if err == nil {
		return nil
	}
	if unwrapped, unwrapErr := tryUnwrapPrimitive(content); unwrapErr == nil {
		if parse(strings.TrimSpace(unwrapped)) == nil {
			return nil
		}
	}
	return err
}

// tryUnwrapPrimitive returns the text of the value held by a
// {"type": ..., "value": ...} envelope.
func tryUnwrapPrimitive(content string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}

	value, ok := envelopeValue(data)
	if !ok {
		return "", fmt.Errorf("not a schema-wrapped value")
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		return fmt.Sprintf("%v", v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
}

// unwrapSchemaValues rewrites every envelope in a JSON document to its bare
// value, e.g. {"age": {"type": "integer", "value": 30}} becomes {"age": 30}.
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	encoded, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// recursiveUnwrap replaces envelopes with their values at any depth.
func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return recursiveUnwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = recursiveUnwrap(val)
		}
		return out

	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = recursiveUnwrap(val)
		}
		return out

	default:
		return data
	}
}

// envelopeValue reports whether m is exactly {"type": ..., "value": ...}.
func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, hasType := m["type"]; !hasType {
		return nil, false
	}
	value, hasValue := m["value"]
	return value, hasValue
}
