package extract

import (
	"context"
	"fmt"
)

// Result is what a generator returns for one prompt: either a completion or
// a structured error detail (a refusal, a rate-limit message, ...). Exactly
// one of the two must be set.
type Result struct {
	Text   *string `json:"text,omitempty"`
	Detail *string `json:"detail,omitempty"`
}

// TextResult returns a completion result.
func TextResult(text string) Result {
	return Result{Text: &text}
}

// DetailResult returns an error-detail result.
func DetailResult(detail string) Result {
	return Result{Detail: &detail}
}

// IsDetail reports whether the result is an error detail.
func (r Result) IsDetail() bool {
	return r.Detail != nil
}

// Validate checks that exactly one of Text and Detail is set.
func (r Result) Validate() error {
	switch {
	case r.Text == nil && r.Detail == nil:
		return fmt.Errorf("%w: both missing", ErrContractViolation)
	case r.Text != nil && r.Detail != nil:
		return fmt.Errorf("%w: both present", ErrContractViolation)
	}
	return nil
}

// Generator produces text for a prompt. Implementations must return a
// [Result] with exactly one of Text or Detail set; the error return is for
// transport failures, which abort the session.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (Result, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (Result, error) {
	return f(ctx, prompt)
}
