package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leofalp/fieldex/core/schema"
)

// Kind is the driver operation a target belongs to.
type Kind string

const (
	KindField Kind = "field"
	KindList  Kind = "list"
	KindTime  Kind = "time"
)

// Request is the input shared by every target of one session.
type Request struct {
	// Schema is the target schema.
	Schema *schema.Schema
	// Prompt is the user text the values are extracted from.
	Prompt string
}

// Target is one unit of work for the driver: a single scalar field, a single
// list field or a start/end time pair.
type Target struct {
	Kind   Kind
	Fields []schema.Field
	// Example is a JSON object showing the expected answer shape.
	Example string
}

// Name returns the field names joined with "+", e.g. "start+end".
func (t Target) Name() string {
	return strings.Join(t.Names(), "+")
}

// Names returns the field names.
func (t Target) Names() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// PromptBuilder renders the prompt sent to the generator for one target.
type PromptBuilder func(req Request, target Target) string

// DefaultPromptBuilder asks for a single JSON object holding only the
// target's keys and shows the example object.
func DefaultPromptBuilder(req Request, target Target) string {
	var b strings.Builder

	schemaName := ""
	if req.Schema != nil {
		schemaName = req.Schema.Name
	}
	fmt.Fprintf(&b, "Extract information from the text below for a %q record", schemaName)
	if req.Schema != nil && req.Schema.Description != "" {
		fmt.Fprintf(&b, " (%s)", req.Schema.Description)
	}
	b.WriteString(".\n\n")

	for _, f := range target.Fields {
		fmt.Fprintf(&b, "Field %q (%s)", f.Name, f.Type)
		if f.Description != "" {
			fmt.Fprintf(&b, ": %s", f.Description)
		}
		b.WriteByte('\n')
	}

	switch target.Kind {
	case KindList:
		b.WriteString("The value is a JSON array of strings.\n")
	case KindTime:
		b.WriteString("Both values are ISO 8601 timestamps.\n")
	}

	b.WriteString("\nReply with one JSON object containing only these keys. ")
	b.WriteString("Use null when the text does not give a value. Example:\n")
	b.WriteString(target.Example)
	b.WriteString("\n\nText:\n\"\"\"\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n\"\"\"\n")
	return b.String()
}

// exampleObject builds the JSON example for fields from their example
// values. Numeric and list examples that are already valid JSON are used
// verbatim; everything else is quoted as a string.
func exampleObject(fields []schema.Field, examples []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		key, _ := json.Marshal(f.Name)
		b.Write(key)
		b.WriteString(": ")
		b.WriteString(exampleValue(f, examples[i]))
	}
	b.WriteByte('}')
	return b.String()
}

func exampleValue(f schema.Field, example string) string {
	example = strings.TrimSpace(example)
	switch f.Type {
	case schema.TypeInteger, schema.TypeFloat, schema.TypeStringList:
		if json.Valid([]byte(example)) {
			return example
		}
	}
	quoted, _ := json.Marshal(example)
	return string(quoted)
}
