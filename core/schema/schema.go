package schema

import (
	"fmt"
	"strings"
)

// FieldType is the declared type of a schema field.
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeInteger    FieldType = "integer"
	TypeFloat      FieldType = "float"
	TypeStringList FieldType = "string_list"
	TypeDatetime   FieldType = "datetime"
)

// ParseFieldType maps a type name, including a few common aliases, to a
// FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str", "text":
		return TypeString, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float", "number", "double":
		return TypeFloat, nil
	case "string_list", "list", "[]string", "list[str]":
		return TypeStringList, nil
	case "datetime", "time", "timestamp":
		return TypeDatetime, nil
	default:
		return "", fmt.Errorf("%w: unsupported field type %q", ErrInvalidSchema, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so that YAML and JSON
// configuration can use the aliases accepted by [ParseFieldType].
func (t *FieldType) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsNumeric reports whether the type is integer or float.
func (t FieldType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

func (t FieldType) String() string {
	return string(t)
}

// Field describes one slot of a schema.
type Field struct {
	Name        string    `yaml:"name" json:"name"`
	Type        FieldType `yaml:"type" json:"type"`
	Description string    `yaml:"description" json:"description,omitempty"`
	Required    bool      `yaml:"required" json:"required,omitempty"`
}

// TimePair names two datetime fields that are requested from the model
// together as one {"start": ..., "end": ...} style object.
type TimePair struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Schema is an ordered mapping from field name to descriptor.
type Schema struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description,omitempty"`
	Fields      []Field    `yaml:"fields" json:"fields"`
	TimePairs   []TimePair `yaml:"time_pairs" json:"time_pairs,omitempty"`

	index map[string]int
}

// New builds and validates a schema from the given fields, in order.
func New(name string, fields ...Field) (*Schema, error) {
	s := &Schema{Name: name, Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is like [New] but panics on an invalid definition. It is meant
// for package-level schema literals and tests.
func MustNew(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks field names and types, verifies time pairs reference
// datetime fields, and builds the name index. It must be called before a
// schema decoded from configuration is used.
func (s *Schema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: schema name is empty", ErrInvalidSchema)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: schema %q has no fields", ErrInvalidSchema, s.Name)
	}

	index := make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: schema %q field %d has no name", ErrInvalidSchema, s.Name, i)
		}
		if _, dup := index[f.Name]; dup {
			return fmt.Errorf("%w: schema %q declares field %q twice", ErrInvalidSchema, s.Name, f.Name)
		}
		parsed, err := ParseFieldType(string(f.Type))
		if err != nil {
			return fmt.Errorf("schema %q field %q: %w", s.Name, f.Name, err)
		}
		s.Fields[i].Type = parsed
		index[f.Name] = i
	}

	paired := make(map[string]bool)
	for _, pair := range s.TimePairs {
		for _, name := range []string{pair.Start, pair.End} {
			i, ok := index[name]
			if !ok {
				return fmt.Errorf("%w: time pair references %q", ErrUnknownField, name)
			}
			if s.Fields[i].Type != TypeDatetime {
				return fmt.Errorf("%w: time pair field %q is %s, not datetime", ErrInvalidSchema, name, s.Fields[i].Type)
			}
			if paired[name] {
				return fmt.Errorf("%w: field %q appears in more than one time pair", ErrInvalidSchema, name)
			}
			paired[name] = true
		}
	}

	s.index = index
	return nil
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.Fields)
}

// Index returns the position of the named field, or -1.
func (s *Schema) Index(name string) int {
	if s.index == nil {
		// Schemas built by struct literal skip Validate; fall back to a scan.
		for i, f := range s.Fields {
			if f.Name == name {
				return i
			}
		}
		return -1
	}
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Field returns the descriptor of the named field.
func (s *Schema) Field(name string) (Field, bool) {
	i := s.Index(name)
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// SameShape reports whether two schemas declare the same fields with the
// same types in the same order. Pointer-equal schemas are trivially equal.
func (s *Schema) SameShape(other *Schema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || s.Name != other.Name || len(s.Fields) != len(other.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i].Name != other.Fields[i].Name || s.Fields[i].Type != other.Fields[i].Type {
			return false
		}
	}
	return true
}

// Partition splits the schema into the three extraction groups: scalar
// fields requested one at a time, list fields requested as arrays, and time
// pairs requested as two-key objects. Datetime fields that are not part of a
// pair are treated as scalars. Each group keeps declaration order.
func (s *Schema) Partition() (scalars []Field, lists []Field, pairs []TimePair) {
	paired := make(map[string]bool, 2*len(s.TimePairs))
	for _, p := range s.TimePairs {
		paired[p.Start] = true
		paired[p.End] = true
	}

	for _, f := range s.Fields {
		switch {
		case paired[f.Name]:
		case f.Type == TypeStringList:
			lists = append(lists, f)
		default:
			scalars = append(scalars, f)
		}
	}
	return scalars, lists, append([]TimePair(nil), s.TimePairs...)
}
