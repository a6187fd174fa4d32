package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Record is an instance of a schema. Its field set is exactly the schema's
// field set; fields that were never filled hold the absent value.
type Record struct {
	schema *Schema
	values []Value
}

// NewRecord returns a record of s with every field absent.
func NewRecord(s *Schema) *Record {
	return &Record{
		schema: s,
		values: make([]Value, len(s.Fields)),
	}
}

// FromMap builds a record from decoded key/value pairs. Keys that are not
// schema fields are ignored and every value goes through [ValueFromRaw].
func FromMap(s *Schema, m map[string]any) *Record {
	r := NewRecord(s)
	for i, f := range s.Fields {
		if raw, ok := m[f.Name]; ok {
			r.values[i] = ValueFromRaw(f, raw)
		}
	}
	return r
}

// Schema returns the schema the record belongs to.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the value of the named field; unknown names read as absent.
func (r *Record) Get(name string) Value {
	i := r.schema.Index(name)
	if i < 0 {
		return Absent()
	}
	return r.values[i]
}

// Set replaces the value of the named field.
func (r *Record) Set(name string, v Value) error {
	i := r.schema.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q is not a field of %s", ErrUnknownField, name, r.schema.Name)
	}
	r.values[i] = v
	return nil
}

// All iterates over fields and their values in schema order.
func (r *Record) All() iter.Seq2[Field, Value] {
	return func(yield func(Field, Value) bool) {
		for i, f := range r.schema.Fields {
			if !yield(f, r.values[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	values := make([]Value, len(r.values))
	for i, v := range r.values {
		values[i] = Of(v.Raw())
	}
	return &Record{schema: r.schema, values: values}
}

// Present returns the number of fields holding a value.
func (r *Record) Present() int {
	n := 0
	for _, v := range r.values {
		if !v.IsAbsent() {
			n++
		}
	}
	return n
}

// Equal reports whether both records share a schema shape and hold equal
// values field by field.
func (r *Record) Equal(other *Record) bool {
	if other == nil || !r.schema.SameShape(other.schema) {
		return false
	}
	for i := range r.values {
		if !r.values[i].Equal(other.values[i]) {
			return false
		}
	}
	return true
}

// Map returns the present values keyed by field name.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, f := range r.schema.Fields {
		if !r.values[i].IsAbsent() {
			out[f.Name] = r.values[i].Raw()
		}
	}
	return out
}

// MarshalJSON writes the fields in schema order with null for absent values.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.schema.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
