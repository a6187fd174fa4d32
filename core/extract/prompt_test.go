package extract

import (
	"strings"
	"testing"

	"github.com/leofalp/fieldex/core/schema"
)

func TestExampleObject(t *testing.T) {
	tests := []struct {
		name     string
		fields   []schema.Field
		examples []string
		want     string
	}{
		{
			name:     "string quoted",
			fields:   []schema.Field{{Name: "title", Type: schema.TypeString}},
			examples: []string{"ACME Corp"},
			want:     `{"title": "ACME Corp"}`,
		},
		{
			name:     "numeric verbatim",
			fields:   []schema.Field{{Name: "total", Type: schema.TypeFloat}},
			examples: []string{" 1250.50 "},
			want:     `{"total": 1250.50}`,
		},
		{
			name:     "invalid numeric quoted",
			fields:   []schema.Field{{Name: "total", Type: schema.TypeFloat}},
			examples: []string{"1.250,50"},
			want:     `{"total": "1.250,50"}`,
		},
		{
			name:     "list verbatim",
			fields:   []schema.Field{{Name: "items", Type: schema.TypeStringList}},
			examples: []string{`["Widgets", "Shipping"]`},
			want:     `{"items": ["Widgets", "Shipping"]}`,
		},
		{
			name: "time pair",
			fields: []schema.Field{
				{Name: "start", Type: schema.TypeDatetime},
				{Name: "end", Type: schema.TypeDatetime},
			},
			examples: []string{"2023-01-01T09:00:00", "2023-01-01T10:00:00"},
			want:     `{"start": "2023-01-01T09:00:00", "end": "2023-01-01T10:00:00"}`,
		},
		{
			name:     "quotes escaped",
			fields:   []schema.Field{{Name: "note", Type: schema.TypeString}},
			examples: []string{`say "hi"`},
			want:     `{"note": "say \"hi\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exampleObject(tt.fields, tt.examples); got != tt.want {
				t.Errorf("exampleObject() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDefaultPromptBuilder(t *testing.T) {
	sc := testSchema(t)
	_, _, pairs := sc.Partition()
	start, _ := sc.Field(pairs[0].Start)
	end, _ := sc.Field(pairs[0].End)

	target := Target{
		Kind:    KindTime,
		Fields:  []schema.Field{start, end},
		Example: `{"start": "a", "end": "b"}`,
	}
	if target.Name() != "start+end" {
		t.Errorf("Name() = %q, want start+end", target.Name())
	}

	prompt := DefaultPromptBuilder(Request{Schema: sc, Prompt: "Sync from 10 to 11."}, target)
	for _, want := range []string{
		`"meeting" record (a scheduled meeting)`,
		`Field "start" (datetime)`,
		`Field "end" (datetime)`,
		"ISO 8601",
		`{"start": "a", "end": "b"}`,
		"Sync from 10 to 11.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestCustomPromptBuilder(t *testing.T) {
	sc := testSchema(t)
	gen := script(TextResult(`{"title": "x"}`))

	builder := func(req Request, target Target) string {
		return "only " + target.Name()
	}
	_, err := NewDriver(gen, WithPromptBuilder(builder)).ProcessFields(t.Context(),
		Request{Schema: sc}, titleField(t, sc), []string{"x"})
	if err != nil {
		t.Fatalf("ProcessFields() error = %v", err)
	}
	if gen.prompts[0] != "only title" {
		t.Errorf("prompt = %q, want %q", gen.prompts[0], "only title")
	}
}
