package schema

import "errors"

var (
	// ErrUnknownField is returned when a field name is not part of the schema.
	ErrUnknownField = errors.New("fieldex: unknown field")

	// ErrUnknownSchema is returned by [Registry.Lookup] for unregistered names.
	ErrUnknownSchema = errors.New("fieldex: unknown schema")

	// ErrSchemaMismatch is returned when two records that must share a schema
	// do not.
	ErrSchemaMismatch = errors.New("fieldex: schema mismatch")

	// ErrExampleMismatch is returned when the example values supplied for a
	// schema are empty or do not line up one-to-one with its fields.
	ErrExampleMismatch = errors.New("fieldex: example values do not match schema fields")

	// ErrInvalidSchema is returned when a schema definition is malformed.
	ErrInvalidSchema = errors.New("fieldex: invalid schema")
)
