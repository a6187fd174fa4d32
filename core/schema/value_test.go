package schema

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		wantAbsent bool
		wantRaw    any
	}{
		{name: "nil", input: nil, wantAbsent: true},
		{name: "None literal", input: "None", wantAbsent: true},
		{name: "lowercase none is text", input: "none", wantRaw: "none"},
		{name: "int widened", input: 7, wantRaw: int64(7)},
		{name: "float32 widened", input: float32(1.5), wantRaw: float64(1.5)},
		{name: "empty string is present", input: "", wantRaw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Of(tt.input)
			if got.IsAbsent() != tt.wantAbsent {
				t.Fatalf("Of(%v).IsAbsent() = %v, want %v", tt.input, got.IsAbsent(), tt.wantAbsent)
			}
			if !tt.wantAbsent && got.Raw() != tt.wantRaw {
				t.Errorf("Of(%v).Raw() = %#v, want %#v", tt.input, got.Raw(), tt.wantRaw)
			}
		})
	}
}

func TestValueFromRaw(t *testing.T) {
	when := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		field Field
		raw   any
		want  Value
	}{
		{name: "string kept", field: Field{Type: TypeString}, raw: "TestName", want: Of("TestName")},
		{name: "None is absent", field: Field{Type: TypeString}, raw: "None", want: Absent()},
		{name: "null is absent", field: Field{Type: TypeFloat}, raw: nil, want: Absent()},
		{name: "number into string field", field: Field{Type: TypeString}, raw: json.Number("42"), want: Of("42")},
		{name: "bool into string field", field: Field{Type: TypeString}, raw: true, want: Of("true")},
		{name: "integral json number", field: Field{Type: TypeInteger}, raw: json.Number("10"), want: Of(int64(10))},
		{name: "fractional into integer kept as text", field: Field{Type: TypeInteger}, raw: json.Number("2.5"), want: Of("2.5")},
		{name: "string into integer kept for coercion", field: Field{Type: TypeInteger}, raw: "10", want: Of("10")},
		{name: "yaml int into integer", field: Field{Type: TypeInteger}, raw: 3, want: Of(int64(3))},
		{name: "integral float64 into integer", field: Field{Type: TypeInteger}, raw: float64(4), want: Of(int64(4))},
		{name: "json number into float", field: Field{Type: TypeFloat}, raw: json.Number("123.45"), want: Of(123.45)},
		{name: "yaml int into float", field: Field{Type: TypeFloat}, raw: 2, want: Of(2.0)},
		{name: "bool into integer is absent", field: Field{Type: TypeInteger}, raw: false, want: Absent()},
		{
			name:  "list elements stringified",
			field: Field{Type: TypeStringList},
			raw:   []any{json.Number("1"), "two", nil, "None"},
			want:  Of([]string{"1", "two"}),
		},
		{name: "scalar into list", field: Field{Type: TypeStringList}, raw: "solo", want: Of([]string{"solo"})},
		{name: "datetime string", field: Field{Type: TypeDatetime}, raw: "2024-03-01T09:30:00Z", want: Of(when)},
		{name: "datetime without zone", field: Field{Type: TypeDatetime}, raw: "2024-03-01 09:30", want: Of(when)},
		{name: "datetime garbage is absent", field: Field{Type: TypeDatetime}, raw: "next tuesday", want: Absent()},
		{name: "datetime from yaml time", field: Field{Type: TypeDatetime}, raw: when, want: Of(when)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValueFromRaw(tt.field, tt.raw)
			if !got.Equal(tt.want) {
				t.Errorf("ValueFromRaw(%s, %#v) = %s, want %s", tt.field.Type, tt.raw, got, tt.want)
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	v := Of(int64(5))
	if i, ok := v.Int(); !ok || i != 5 {
		t.Errorf("Int() = %d, %v", i, ok)
	}
	if f, ok := v.Number(); !ok || f != 5 {
		t.Errorf("Number() = %v, %v", f, ok)
	}
	if _, ok := v.Str(); ok {
		t.Error("Str() ok for an integer value")
	}
	if _, ok := Absent().Number(); ok {
		t.Error("Number() ok for absent value")
	}

	list := Of([]string{"a"})
	got, _ := list.List()
	got[0] = "mutated"
	again, _ := list.List()
	if again[0] != "a" {
		t.Error("List() exposed the internal slice")
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{name: "absent", in: Absent(), want: "null"},
		{name: "string", in: Of("x"), want: `"x"`},
		{name: "time", in: Of(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), want: `"2024-01-02T03:04:05Z"`},
		{name: "list", in: Of([]string{"a", "b"}), want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}
