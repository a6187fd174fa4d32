package score

import (
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/leofalp/fieldex/core/schema"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// epsilon keeps the relative numeric difference defined when both numbers
// are zero.
const epsilon = 1e-9

// fieldScore compares one candidate value against its ground truth.
func fieldScore(field schema.Field, candidate, truth schema.Value) float64 {
	switch {
	case candidate.IsAbsent() && truth.IsAbsent():
		return 1
	case candidate.IsAbsent() || truth.IsAbsent():
		return 0
	}

	switch field.Type {
	case schema.TypeInteger, schema.TypeFloat:
		a, okA := candidate.Number()
		b, okB := truth.Number()
		if okA && okB {
			return NumericSimilarity(a, b)
		}
	case schema.TypeStringList:
		a, okA := candidate.List()
		b, okB := truth.List()
		if okA && okB {
			return ListCoverage(a, b)
		}
	case schema.TypeDatetime:
		a, okA := candidate.Time()
		b, okB := truth.Time()
		if okA && okB {
			if a.Truncate(time.Second).Equal(b.Truncate(time.Second)) {
				return 1
			}
			return 0
		}
	}
	return StringSimilarity(candidate.String(), truth.String())
}

// StringSimilarity returns 2*M / (len(a) + len(b)), where M is the number of
// runes the two trimmed strings have in common according to a character
// diff. Two empty strings are identical.
func StringSimilarity(a, b string) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return 1
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	matched := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}
	return 2 * float64(matched) / float64(total)
}

// NumericSimilarity returns 1 - min(1, |a-b| / max(|a|, |b|)).
func NumericSimilarity(a, b float64) float64 {
	// NaN never matches, not even NaN.
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	scale := math.Max(math.Max(math.Abs(a), math.Abs(b)), epsilon)
	diff := math.Abs(a - b)
	if math.IsInf(diff, 0) || math.IsInf(scale, 0) {
		if a == b {
			return 1
		}
		return 0
	}
	return 1 - math.Min(1, diff/scale)
}

// ListCoverage returns the fraction of truth elements found in candidate,
// compared after trimming. An empty truth list is matched only by an empty
// candidate.
func ListCoverage(candidate, truth []string) float64 {
	if len(truth) == 0 {
		if len(candidate) == 0 {
			return 1
		}
		return 0
	}

	have := make([]string, len(candidate))
	for i, c := range candidate {
		have[i] = strings.TrimSpace(c)
	}

	found := 0
	for _, t := range truth {
		if slices.Contains(have, strings.TrimSpace(t)) {
			found++
		}
	}
	return float64(found) / float64(len(truth))
}
