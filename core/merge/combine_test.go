package merge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leofalp/fieldex/core/schema"
	"pgregory.net/rapid"
)

func pairSchema() *schema.Schema {
	return schema.MustNew("pair",
		schema.Field{Name: "a", Type: schema.TypeString},
		schema.Field{Name: "b", Type: schema.TypeString},
	)
}

func record(t testing.TB, sc *schema.Schema, values map[string]any) *schema.Record {
	t.Helper()
	r := schema.NewRecord(sc)
	for name, v := range values {
		if err := r.Set(name, schema.Of(v)); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}
	return r
}

func TestCombineModels(t *testing.T) {
	sc := pairSchema()

	tests := []struct {
		name    string
		records []*schema.Record
		want    map[string]schema.Value
	}{
		{
			name: "complementary",
			records: []*schema.Record{
				record(t, sc, map[string]any{"a": "x"}),
				record(t, sc, map[string]any{"b": "y"}),
			},
			want: map[string]schema.Value{"a": schema.Of("x"), "b": schema.Of("y")},
		},
		{
			name: "first present wins",
			records: []*schema.Record{
				record(t, sc, map[string]any{"a": "first"}),
				record(t, sc, map[string]any{"a": "second", "b": "y"}),
			},
			want: map[string]schema.Value{"a": schema.Of("first"), "b": schema.Of("y")},
		},
		{
			name: "all absent",
			records: []*schema.Record{
				schema.NewRecord(sc),
				schema.NewRecord(sc),
			},
			want: map[string]schema.Value{"a": schema.Absent(), "b": schema.Absent()},
		},
		{
			name: "nil entries skipped",
			records: []*schema.Record{
				nil,
				record(t, sc, map[string]any{"b": "y"}),
			},
			want: map[string]schema.Value{"a": schema.Absent(), "b": schema.Of("y")},
		},
		{
			name:    "single record",
			records: []*schema.Record{record(t, sc, map[string]any{"a": "x", "b": "y"})},
			want:    map[string]schema.Value{"a": schema.Of("x"), "b": schema.Of("y")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CombineModels(tt.records...)
			if err != nil {
				t.Fatalf("CombineModels() error = %v", err)
			}
			for name, want := range tt.want {
				if v := got.Get(name); !v.Equal(want) {
					t.Errorf("field %q = %v, want %v", name, v, want)
				}
			}
		})
	}
}

func TestCombineModels_DoesNotMutateInputs(t *testing.T) {
	sc := pairSchema()
	first := record(t, sc, map[string]any{"a": "x"})
	second := record(t, sc, map[string]any{"b": "y"})

	merged, err := CombineModels(first, second)
	if err != nil {
		t.Fatalf("CombineModels() error = %v", err)
	}
	if err := merged.Set("a", schema.Of("changed")); err != nil {
		t.Fatal(err)
	}

	if !first.Get("b").IsAbsent() {
		t.Error("first record gained field b")
	}
	if got, _ := first.Get("a").Str(); got != "x" {
		t.Errorf("first record field a = %q, want x", got)
	}
}

func TestCombineModels_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := CombineModels(); !errors.Is(err, ErrEmptySequence) {
			t.Errorf("CombineModels() error = %v, want ErrEmptySequence", err)
		}
	})

	t.Run("only nil", func(t *testing.T) {
		if _, err := CombineModels(nil, nil); !errors.Is(err, ErrEmptySequence) {
			t.Errorf("CombineModels(nil, nil) error = %v, want ErrEmptySequence", err)
		}
	})

	t.Run("schema mismatch", func(t *testing.T) {
		other := schema.MustNew("other", schema.Field{Name: "c", Type: schema.TypeInteger})
		_, err := CombineModels(schema.NewRecord(pairSchema()), schema.NewRecord(other))
		if !errors.Is(err, schema.ErrSchemaMismatch) {
			t.Errorf("CombineModels() error = %v, want ErrSchemaMismatch", err)
		}
	})

	t.Run("equal shape accepted", func(t *testing.T) {
		if _, err := CombineModels(schema.NewRecord(pairSchema()), schema.NewRecord(pairSchema())); err != nil {
			t.Errorf("CombineModels() error = %v", err)
		}
	})
}

// The merged value of every field is the value of the first record in
// which that field is present.
func TestCombineModels_PriorityOrdering(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nFields := rapid.IntRange(1, 6).Draw(rt, "fields")
		fields := make([]schema.Field, nFields)
		for i := range fields {
			fields[i] = schema.Field{Name: fmt.Sprintf("f%d", i), Type: schema.TypeString}
		}
		sc := schema.MustNew("prop", fields...)

		nRecords := rapid.IntRange(1, 5).Draw(rt, "records")
		records := make([]*schema.Record, nRecords)
		for i := range records {
			records[i] = schema.NewRecord(sc)
			for _, f := range fields {
				if rapid.Bool().Draw(rt, fmt.Sprintf("present_%d_%s", i, f.Name)) {
					_ = records[i].Set(f.Name, schema.Of(fmt.Sprintf("r%d-%s", i, f.Name)))
				}
			}
		}

		merged, err := CombineModels(records...)
		if err != nil {
			rt.Fatalf("CombineModels() error = %v", err)
		}

		for _, f := range fields {
			want := schema.Absent()
			for _, r := range records {
				if v := r.Get(f.Name); !v.IsAbsent() {
					want = v
					break
				}
			}
			if got := merged.Get(f.Name); !got.Equal(want) {
				rt.Fatalf("field %s = %v, want %v", f.Name, got, want)
			}
		}

		// A record placed first overrides everything it holds.
		front := records[nRecords-1]
		reordered, err := CombineModels(append([]*schema.Record{front}, records...)...)
		if err != nil {
			rt.Fatalf("CombineModels() error = %v", err)
		}
		for _, f := range fields {
			if v := front.Get(f.Name); !v.IsAbsent() && !reordered.Get(f.Name).Equal(v) {
				rt.Fatalf("field %s = %v, want front value %v", f.Name, reordered.Get(f.Name), v)
			}
		}
	})
}
