package merge

import (
	"testing"

	"github.com/leofalp/fieldex/core/schema"
)

func TestPostProcessModel(t *testing.T) {
	sc := schema.MustNew("numbers",
		schema.Field{Name: "count", Type: schema.TypeInteger},
		schema.Field{Name: "ratio", Type: schema.TypeFloat},
		schema.Field{Name: "label", Type: schema.TypeString},
		schema.Field{Name: "tags", Type: schema.TypeStringList},
	)

	tests := []struct {
		name  string
		input map[string]any
		want  map[string]schema.Value
	}{
		{
			name:  "numeric text coerced",
			input: map[string]any{"count": "10", "ratio": "2.5"},
			want:  map[string]schema.Value{"count": schema.Of(int64(10)), "ratio": schema.Of(2.5)},
		},
		{
			name:  "padded numeric text",
			input: map[string]any{"count": " 7 ", "ratio": "\t3"},
			want:  map[string]schema.Value{"count": schema.Of(int64(7)), "ratio": schema.Of(3.0)},
		},
		{
			name:  "invalid text becomes absent",
			input: map[string]any{"count": "invalid", "ratio": "n/a"},
			want:  map[string]schema.Value{"count": schema.Absent(), "ratio": schema.Absent()},
		},
		{
			name:  "NaN text becomes absent",
			input: map[string]any{"ratio": "NaN"},
			want:  map[string]schema.Value{"ratio": schema.Absent()},
		},
		{
			name:  "infinite text becomes absent",
			input: map[string]any{"ratio": "-Infinity", "count": "Inf"},
			want:  map[string]schema.Value{"ratio": schema.Absent(), "count": schema.Absent()},
		},
		{
			name:  "fractional integer becomes absent",
			input: map[string]any{"count": "2.5"},
			want:  map[string]schema.Value{"count": schema.Absent()},
		},
		{
			name:  "schema envelope text",
			input: map[string]any{"count": `{"type": "integer", "value": 4}`},
			want:  map[string]schema.Value{"count": schema.Of(int64(4))},
		},
		{
			name:  "already typed kept",
			input: map[string]any{"count": int64(3), "ratio": 0.5},
			want:  map[string]schema.Value{"count": schema.Of(int64(3)), "ratio": schema.Of(0.5)},
		},
		{
			name:  "non numeric fields untouched",
			input: map[string]any{"label": "10", "tags": []string{"1", "x"}},
			want: map[string]schema.Value{
				"label": schema.Of("10"),
				"tags":  schema.Of([]string{"1", "x"}),
				"count": schema.Absent(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := record(t, sc, tt.input)
			before := in.Clone()

			got := PostProcessModel(in)

			for name, want := range tt.want {
				if v := got.Get(name); !v.Equal(want) {
					t.Errorf("field %q = %v, want %v", name, v, want)
				}
			}
			if !in.Equal(before) {
				t.Error("PostProcessModel mutated its input")
			}
			if _, err := got.MarshalJSON(); err != nil {
				t.Errorf("MarshalJSON() error = %v", err)
			}
		})
	}
}

func TestPostProcessModel_Nil(t *testing.T) {
	if got := PostProcessModel(nil); got != nil {
		t.Errorf("PostProcessModel(nil) = %v, want nil", got)
	}
}
