package merge

import (
	"errors"
	"fmt"

	"github.com/leofalp/fieldex/core/schema"
)

// ErrEmptySequence is returned when CombineModels receives no records.
var ErrEmptySequence = errors.New("fieldex: merge requires at least one record")

// CombineModels merges records of one schema into a new record. For each
// field the first present value, in argument order, wins; a field absent
// everywhere stays absent. Nil entries are skipped; a sequence without any
// record is [ErrEmptySequence] and records of differently shaped schemas are
// [schema.ErrSchemaMismatch].
//
// The inputs are not modified.
func CombineModels(records ...*schema.Record) (*schema.Record, error) {
	var base *schema.Record
	for _, r := range records {
		if r != nil {
			base = r
			break
		}
	}
	if base == nil {
		return nil, ErrEmptySequence
	}

	sc := base.Schema()
	for i, r := range records {
		if r == nil {
			continue
		}
		if r.Schema() != sc && !r.Schema().SameShape(sc) {
			return nil, fmt.Errorf("record %d has schema %q, want %q: %w",
				i, r.Schema().Name, sc.Name, schema.ErrSchemaMismatch)
		}
	}

	merged := schema.NewRecord(sc)
	for _, field := range sc.Fields {
		for _, r := range records {
			if r == nil {
				continue
			}
			if v := r.Get(field.Name); !v.IsAbsent() {
				// Set cannot fail: field comes from sc.
				_ = merged.Set(field.Name, v)
				break
			}
		}
	}
	return merged, nil
}
