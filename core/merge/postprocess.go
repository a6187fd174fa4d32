package merge

import (
	"math"

	"github.com/leofalp/fieldex/core/parse"
	"github.com/leofalp/fieldex/core/schema"
)

// PostProcessModel returns a copy of r in which every integer or float field
// that holds text is parsed into its declared type with
// [parse.ParseStringAs]. Text that does not parse becomes absent. Other
// fields are copied unchanged. A nil record yields nil.
func PostProcessModel(r *schema.Record) *schema.Record {
	if r == nil {
		return nil
	}

	out := r.Clone()
	for field, value := range r.All() {
		text, ok := value.Str()
		if !ok {
			continue
		}

		var coerced schema.Value
		switch field.Type {
		case schema.TypeInteger:
			coerced = coerce[int64](text)
		case schema.TypeFloat:
			coerced = coerce[float64](text)
		default:
			continue
		}
		// Set cannot fail: field comes from r's schema.
		_ = out.Set(field.Name, coerced)
	}
	return out
}

func coerce[T int64 | float64](text string) schema.Value {
	n, err := parse.ParseStringAs[T](text)
	if err != nil {
		return schema.Absent()
	}
	// "NaN" and "Inf" parse as floats but have no JSON form.
	if f := float64(n); math.IsNaN(f) || math.IsInf(f, 0) {
		return schema.Absent()
	}
	return schema.Of(n)
}
