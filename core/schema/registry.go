package schema

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Case is one ground-truth sample: the user prompt an extraction would be
// run on and the record it is expected to produce.
type Case struct {
	Prompt string         `yaml:"prompt"`
	Values map[string]any `yaml:"values"`
}

// Entry bundles a schema with its example values (one per field, in field
// order) and its ground-truth cases.
type Entry struct {
	Schema      *Schema
	Examples    []string
	GroundTruth []Case
}

// entryFile is the on-disk layout of an Entry.
type entryFile struct {
	Schema      `yaml:",inline"`
	Examples    []string `yaml:"examples"`
	GroundTruth []Case   `yaml:"ground_truth"`
}

type registryFile struct {
	Schemas []entryFile `yaml:"schemas"`
}

// Example returns the example value for the named field.
func (e *Entry) Example(field string) (string, bool) {
	i := e.Schema.Index(field)
	if i < 0 || i >= len(e.Examples) {
		return "", false
	}
	return e.Examples[i], true
}

// ExamplesFor returns the examples of the given fields, in the order given.
func (e *Entry) ExamplesFor(fields []Field) ([]string, error) {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		ex, ok := e.Example(f.Name)
		if !ok {
			return nil, fmt.Errorf("%w: no example for %s.%s", ErrExampleMismatch, e.Schema.Name, f.Name)
		}
		out = append(out, ex)
	}
	return out, nil
}

// Records returns the ground-truth cases converted to records.
func (e *Entry) Records() []*Record {
	out := make([]*Record, len(e.GroundTruth))
	for i, c := range e.GroundTruth {
		out[i] = FromMap(e.Schema, c.Values)
	}
	return out
}

func (e *Entry) validate() error {
	if err := e.Schema.Validate(); err != nil {
		return err
	}
	if len(e.Examples) == 0 {
		return fmt.Errorf("%w: schema %q has no example values", ErrExampleMismatch, e.Schema.Name)
	}
	if len(e.Examples) != len(e.Schema.Fields) {
		return fmt.Errorf("%w: schema %q has %d fields but %d examples",
			ErrExampleMismatch, e.Schema.Name, len(e.Schema.Fields), len(e.Examples))
	}
	return nil
}

// Registry is the read-only catalogue of schemas known to the process.
type Registry struct {
	entries map[string]*Entry
	order   []string
}

// NewRegistry validates the entries and indexes them by schema name.
func NewRegistry(entries ...*Entry) (*Registry, error) {
	r := &Registry{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		if e == nil || e.Schema == nil {
			return nil, fmt.Errorf("%w: nil entry", ErrInvalidSchema)
		}
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.entries[e.Schema.Name]; dup {
			return nil, fmt.Errorf("%w: schema %q registered twice", ErrInvalidSchema, e.Schema.Name)
		}
		r.entries[e.Schema.Name] = e
		r.order = append(r.order, e.Schema.Name)
	}
	return r, nil
}

// ParseRegistry decodes a YAML catalogue.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding schema catalogue: %w", err)
	}

	entries := make([]*Entry, 0, len(file.Schemas))
	for i := range file.Schemas {
		ef := file.Schemas[i]
		s := ef.Schema
		entries = append(entries, &Entry{
			Schema:      &s,
			Examples:    ef.Examples,
			GroundTruth: ef.GroundTruth,
		})
	}
	return NewRegistry(entries...)
}

// LoadRegistry reads and decodes a YAML catalogue file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema catalogue: %w", err)
	}
	return ParseRegistry(data)
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	return e, nil
}

// Names returns the registered schema names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}
