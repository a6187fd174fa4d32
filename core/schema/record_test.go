package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRecordStartsAbsent(t *testing.T) {
	s := meetingSchema(t)
	r := NewRecord(s)

	for f, v := range r.All() {
		if !v.IsAbsent() {
			t.Errorf("field %s = %s, want absent", f.Name, v)
		}
	}
	if r.Present() != 0 {
		t.Errorf("Present() = %d, want 0", r.Present())
	}
}

func TestRecordSetGet(t *testing.T) {
	r := NewRecord(meetingSchema(t))

	if err := r.Set("title", Of("Standup")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := r.Get("title").Str(); got != "Standup" {
		t.Errorf("Get(title) = %q, want Standup", got)
	}

	err := r.Set("colour", Of("blue"))
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownField", err)
	}
	if !r.Get("colour").IsAbsent() {
		t.Error("Get(unknown) should be absent")
	}
}

func TestFromMapIgnoresUnknownKeys(t *testing.T) {
	s := meetingSchema(t)
	r := FromMap(s, map[string]any{
		"title":   "Review",
		"room":    "None",
		"unknown": "dropped",
	})

	if got, _ := r.Get("title").Str(); got != "Review" {
		t.Errorf("title = %q", got)
	}
	if !r.Get("room").IsAbsent() {
		t.Errorf("room = %s, want absent", r.Get("room"))
	}
	if _, ok := r.Map()["unknown"]; ok {
		t.Error("unknown key leaked into the record")
	}
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r := NewRecord(meetingSchema(t))
	_ = r.Set("attendees", Of([]string{"ana"}))

	c := r.Clone()
	_ = c.Set("attendees", Of([]string{"bo"}))

	got, _ := r.Get("attendees").List()
	if got[0] != "ana" {
		t.Errorf("original changed after clone mutation: %v", got)
	}
	if !r.Equal(r.Clone()) {
		t.Error("Clone() not Equal to original")
	}
}

func TestRecordMarshalJSONKeepsSchemaOrder(t *testing.T) {
	s := MustNew("pair",
		Field{Name: "zeta", Type: TypeString},
		Field{Name: "alpha", Type: TypeInteger},
	)
	r := NewRecord(s)
	_ = r.Set("alpha", Of(1))

	got, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"zeta":null,"alpha":1}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
