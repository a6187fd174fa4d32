package score

import (
	"math"
	"sync"
)

// FieldStats summarises the scores one field received across trials.
type FieldStats struct {
	Field string  `json:"field"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Summary is a snapshot of an [Aggregator].
type Summary struct {
	Trials int          `json:"trials"`
	Mean   float64      `json:"mean"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
	Fields []FieldStats `json:"fields"`
}

type fieldAcc struct {
	sum, min, max float64
	count         int
}

// Aggregator accumulates match results. It is safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	order  []string
	fields map[string]*fieldAcc
	trials int
	sum    float64
	min    float64
	max    float64
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{fields: make(map[string]*fieldAcc)}
}

// Add records one result. Nil results are ignored.
func (a *Aggregator) Add(result *MatchResult) {
	if result == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.trials == 0 {
		a.min, a.max = math.Inf(1), math.Inf(-1)
	}
	a.trials++
	a.sum += result.Aggregate
	a.min = math.Min(a.min, result.Aggregate)
	a.max = math.Max(a.max, result.Aggregate)

	for _, f := range result.Fields {
		acc, ok := a.fields[f.Field]
		if !ok {
			acc = &fieldAcc{min: math.Inf(1), max: math.Inf(-1)}
			a.fields[f.Field] = acc
			a.order = append(a.order, f.Field)
		}
		acc.sum += f.Score
		acc.count++
		acc.min = math.Min(acc.min, f.Score)
		acc.max = math.Max(acc.max, f.Score)
	}
}

// Summary returns the statistics collected so far. Fields are listed in the
// order they were first seen.
func (a *Aggregator) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Summary{Trials: a.trials, Fields: make([]FieldStats, 0, len(a.order))}
	if a.trials == 0 {
		return s
	}
	s.Mean = a.sum / float64(a.trials)
	s.Min, s.Max = a.min, a.max

	for _, name := range a.order {
		acc := a.fields[name]
		s.Fields = append(s.Fields, FieldStats{
			Field: name,
			Mean:  acc.sum / float64(acc.count),
			Min:   acc.min,
			Max:   acc.max,
			Count: acc.count,
		})
	}
	return s
}
