package overview

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// overviewContextKey is the key used to store Overview in context.
const overviewContextKey contextKey = "overview"

// Outcome is how a field (or time pair) left the extraction driver.
type Outcome string

const (
	// OutcomeAccepted means a completion passed the classifier.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeDetail means the generator answered with an error detail.
	OutcomeDetail Outcome = "detail"
	// OutcomeDropped means every attempt was rejected.
	OutcomeDropped Outcome = "dropped"
)

// FieldStat records the attempts spent on one field and how it ended.
type FieldStat struct {
	Field    string  `json:"field"`
	Attempts int     `json:"attempts"`
	Outcome  Outcome `json:"outcome"`
}

// Overview aggregates the statistics of a single extraction session: which
// fields were accepted, answered with a detail or dropped, how many
// generator calls it took and how long the session ran.
type Overview struct {
	mu sync.Mutex

	SessionID string      `json:"session_id"`
	Schema    string      `json:"schema,omitempty"`
	Attempts  int         `json:"attempts"`
	Fields    []FieldStat `json:"fields"`
	// Fragments is the number of fragments handed to the parser.
	Fragments int `json:"fragments"`
	// PresentFields is the number of present fields in the final record.
	PresentFields int `json:"present_fields"`

	// ExecutionStartTime marks when the session started
	ExecutionStartTime time.Time `json:"execution_start_time,omitempty"`
	// ExecutionEndTime marks when the session ended
	ExecutionEndTime time.Time `json:"execution_end_time,omitempty"`
}

// New returns an empty overview with a fresh session id.
func New() *Overview {
	return &Overview{SessionID: uuid.NewString()}
}

// OverviewFromContext retrieves the Overview from the context, creating one if
// it does not already exist. The context pointer is updated in-place when a new
// Overview is created so callers see the enriched context.
func OverviewFromContext(ctx *context.Context) *Overview {
	overviewVal := (*ctx).Value(overviewContextKey)
	if overviewVal == nil {
		overview := New()
		*ctx = overview.ToContext(*ctx)
		return overview
	}

	overview, ok := overviewVal.(*Overview)
	if !ok {
		return nil
	}
	return overview
}

// ToContext stores the Overview in the given context and returns the enriched context.
func (overview *Overview) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, overviewContextKey, overview)
}

// SetSchema records the name of the schema being extracted.
func (overview *Overview) SetSchema(name string) {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.Schema = name
}

// AddAttempt counts one generator call.
func (overview *Overview) AddAttempt() {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.Attempts++
}

// RecordField records how a field ended after the given number of attempts.
func (overview *Overview) RecordField(field string, attempts int, outcome Outcome) {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.Fields = append(overview.Fields, FieldStat{Field: field, Attempts: attempts, Outcome: outcome})
}

// SetResult records the number of parsed fragments and present fields.
func (overview *Overview) SetResult(fragments, presentFields int) {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.Fragments = fragments
	overview.PresentFields = presentFields
}

// FieldsWith returns the names of the fields that ended with the outcome, in
// the order they were recorded.
func (overview *Overview) FieldsWith(outcome Outcome) []string {
	overview.mu.Lock()
	defer overview.mu.Unlock()

	var names []string
	for _, f := range overview.Fields {
		if f.Outcome == outcome {
			names = append(names, f.Field)
		}
	}
	return names
}

// Stats returns a copy of the per-field statistics.
func (overview *Overview) Stats() []FieldStat {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	return slices.Clone(overview.Fields)
}

// StartExecution marks the start of the session.
func (overview *Overview) StartExecution() {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.ExecutionStartTime = time.Now()
}

// EndExecution marks the end of the session.
func (overview *Overview) EndExecution() {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.ExecutionEndTime = time.Now()
}

// ExecutionDuration returns the total execution duration.
// Returns 0 if execution hasn't started or ended.
func (overview *Overview) ExecutionDuration() time.Duration {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	if overview.ExecutionStartTime.IsZero() || overview.ExecutionEndTime.IsZero() {
		return 0
	}
	return overview.ExecutionEndTime.Sub(overview.ExecutionStartTime)
}
