package score

import (
	"errors"
	"fmt"

	"github.com/leofalp/fieldex/core/schema"
)

// ErrNoGroundTruth is returned when the ground truth record is nil.
var ErrNoGroundTruth = errors.New("fieldex: ground truth record is nil")

// FieldScore is the similarity of one field, in [0, 1].
type FieldScore struct {
	Field string  `json:"field"`
	Score float64 `json:"score"`
}

// MatchResult holds per-field scores in schema order and their mean.
type MatchResult struct {
	Schema    string       `json:"schema"`
	Fields    []FieldScore `json:"fields"`
	Aggregate float64      `json:"aggregate"`
}

// Map returns the per-field scores keyed by field name.
func (m *MatchResult) Map() map[string]float64 {
	out := make(map[string]float64, len(m.Fields))
	for _, f := range m.Fields {
		out[f.Field] = f.Score
	}
	return out
}

// CalculateMatchingPercentage returns the aggregate similarity between
// candidate and truth.
func CalculateMatchingPercentage(candidate, truth *schema.Record) (float64, error) {
	result, err := CalculateMatchingPercentageInfo(candidate, truth)
	if err != nil {
		return 0, err
	}
	return result.Aggregate, nil
}

// CalculateMatchingPercentageInfo scores every field of truth's schema.
// A nil candidate scores like an all-absent record.
//
// Per field: two absent values score 1 and a single absent value 0. Present
// values compare by declared type: character similarity for strings,
// relative difference for numbers, coverage of the truth list for lists and
// equality to the second for datetimes. Values of an unexpected dynamic type
// fall back to character similarity of their text.
func CalculateMatchingPercentageInfo(candidate, truth *schema.Record) (*MatchResult, error) {
	if truth == nil {
		return nil, ErrNoGroundTruth
	}
	sc := truth.Schema()
	if candidate == nil {
		candidate = schema.NewRecord(sc)
	}
	if cs := candidate.Schema(); cs != sc && !cs.SameShape(sc) {
		return nil, fmt.Errorf("candidate schema %q, ground truth schema %q: %w",
			cs.Name, sc.Name, schema.ErrSchemaMismatch)
	}

	result := &MatchResult{
		Schema: sc.Name,
		Fields: make([]FieldScore, 0, sc.Len()),
	}
	total := 0.0
	for field, want := range truth.All() {
		s := fieldScore(field, candidate.Get(field.Name), want)
		result.Fields = append(result.Fields, FieldScore{Field: field.Name, Score: s})
		total += s
	}
	if len(result.Fields) > 0 {
		result.Aggregate = total / float64(len(result.Fields))
	}
	return result, nil
}
