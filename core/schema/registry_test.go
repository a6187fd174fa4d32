package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const catalogueYAML = `
schemas:
  - name: invoice
    description: A supplier invoice
    fields:
      - name: vendor
        type: string
        description: Legal name of the supplier
        required: true
      - name: total
        type: float
        description: Amount due including tax
      - name: lines
        type: list
        description: Line item descriptions
    examples:
      - "ACME Corp"
      - "1250.50"
      - '["Widgets", "Shipping"]'
    ground_truth:
      - prompt: "Invoice from Globex for 99.90, one line: Support"
        values:
          vendor: Globex
          total: 99.90
          lines: [Support]
`

func TestParseRegistry(t *testing.T) {
	reg, err := ParseRegistry([]byte(catalogueYAML))
	if err != nil {
		t.Fatalf("ParseRegistry() error = %v", err)
	}

	if diff := cmp.Diff([]string{"invoice"}, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	entry, err := reg.Lookup("invoice")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if entry.Schema.Fields[2].Type != TypeStringList {
		t.Errorf("alias 'list' decoded as %q", entry.Schema.Fields[2].Type)
	}
	if ex, _ := entry.Example("total"); ex != "1250.50" {
		t.Errorf("Example(total) = %q", ex)
	}

	records := entry.Records()
	if len(records) != 1 {
		t.Fatalf("Records() len = %d, want 1", len(records))
	}
	if total, ok := records[0].Get("total").Float(); !ok || total != 99.90 {
		t.Errorf("ground truth total = %v, %v", total, ok)
	}
	if lines, _ := records[0].Get("lines").List(); len(lines) != 1 || lines[0] != "Support" {
		t.Errorf("ground truth lines = %v", lines)
	}
}

func TestParseRegistryExampleMismatch(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing examples",
			yaml: "schemas:\n  - name: s\n    fields:\n      - {name: a, type: string}\n",
		},
		{
			name: "count mismatch",
			yaml: "schemas:\n  - name: s\n    fields:\n      - {name: a, type: string}\n      - {name: b, type: string}\n    examples: [x]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.yaml))
			if !errors.Is(err, ErrExampleMismatch) {
				t.Errorf("ParseRegistry() error = %v, want ErrExampleMismatch", err)
			}
		})
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if _, err := reg.Lookup("nope"); !errors.Is(err, ErrUnknownSchema) {
		t.Errorf("Lookup() error = %v, want ErrUnknownSchema", err)
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemas.yaml")
	if err := os.WriteFile(path, []byte(catalogueYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if _, err := reg.Lookup("invoice"); err != nil {
		t.Errorf("Lookup() error = %v", err)
	}

	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadRegistry() on a missing file returned nil error")
	}
}
