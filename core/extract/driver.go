package extract

import (
	"context"
	"fmt"

	"github.com/leofalp/fieldex/core/overview"
	"github.com/leofalp/fieldex/core/parse"
	"github.com/leofalp/fieldex/core/schema"
	"github.com/leofalp/fieldex/internal/utils"
	"github.com/leofalp/fieldex/providers/observability"
)

// Fragment is the accepted answer for one target.
type Fragment struct {
	Kind   Kind     `json:"kind"`
	Fields []string `json:"fields"`
	// Text is the sanitised completion, or the detail message when Detail
	// is set.
	Text     string `json:"text"`
	Detail   bool   `json:"detail,omitempty"`
	Attempts int    `json:"attempts"`
}

// Driver runs the per-field attempt loop against a generator.
// A Driver is safe for concurrent use if its Generator is.
type Driver struct {
	gen Generator
	cfg Config
}

// NewDriver returns a driver for gen.
func NewDriver(gen Generator, opts ...Option) *Driver {
	return &Driver{gen: gen, cfg: newConfig(opts...)}
}

// MaxAttempts returns the attempt budget per target.
func (d *Driver) MaxAttempts() int {
	return d.cfg.MaxAttempts
}

// ProcessFields extracts each scalar field on its own. examples holds one
// example value per field, in the same order.
func (d *Driver) ProcessFields(ctx context.Context, req Request, fields []schema.Field, examples []string) ([]Fragment, error) {
	return d.processEach(ctx, req, KindField, fields, examples)
}

// ProcessLists extracts each list field on its own. examples holds one
// example value per field, in the same order.
func (d *Driver) ProcessLists(ctx context.Context, req Request, fields []schema.Field, examples []string) ([]Fragment, error) {
	return d.processEach(ctx, req, KindList, fields, examples)
}

// ProcessTimes extracts the start and end of each pair together. examples
// holds the start and end example values of each pair.
func (d *Driver) ProcessTimes(ctx context.Context, req Request, pairs []schema.TimePair, examples [][2]string) ([]Fragment, error) {
	if err := checkExamples(len(pairs), len(examples)); err != nil {
		return nil, err
	}

	targets := make([]Target, 0, len(pairs))
	for i, pair := range pairs {
		fields := make([]schema.Field, 0, 2)
		for _, name := range []string{pair.Start, pair.End} {
			f, ok := lookupField(req.Schema, name)
			if !ok {
				return nil, fmt.Errorf("time pair %s/%s: %w: %s", pair.Start, pair.End, schema.ErrUnknownField, name)
			}
			fields = append(fields, f)
		}
		targets = append(targets, Target{
			Kind:    KindTime,
			Fields:  fields,
			Example: exampleObject(fields, examples[i][:]),
		})
	}
	return d.run(ctx, req, targets)
}

func (d *Driver) processEach(ctx context.Context, req Request, kind Kind, fields []schema.Field, examples []string) ([]Fragment, error) {
	if err := checkExamples(len(fields), len(examples)); err != nil {
		return nil, err
	}

	targets := make([]Target, len(fields))
	for i, f := range fields {
		targets[i] = Target{
			Kind:    kind,
			Fields:  []schema.Field{f},
			Example: exampleObject([]schema.Field{f}, examples[i:i+1]),
		}
	}
	return d.run(ctx, req, targets)
}

func checkExamples(targets, examples int) error {
	switch {
	case targets > 0 && examples == 0:
		return fmt.Errorf("%w: %d fields but no examples", schema.ErrExampleMismatch, targets)
	case targets != examples:
		return fmt.Errorf("%w: %d fields, %d examples", schema.ErrExampleMismatch, targets, examples)
	}
	return nil
}

func lookupField(sc *schema.Schema, name string) (schema.Field, bool) {
	if sc == nil {
		return schema.Field{}, false
	}
	return sc.Field(name)
}

// run processes the targets in order, one at a time.
func (d *Driver) run(ctx context.Context, req Request, targets []Target) ([]Fragment, error) {
	var fragments []Fragment
	for _, t := range targets {
		frag, err := d.attempt(ctx, req, t)
		if err != nil {
			return fragments, err
		}
		if frag != nil {
			fragments = append(fragments, *frag)
		}
	}
	return fragments, nil
}

// attempt spends up to MaxAttempts generator calls on one target. It
// returns a nil fragment when every completion was rejected.
func (d *Driver) attempt(ctx context.Context, req Request, t Target) (*Fragment, error) {
	ov := overview.OverviewFromContext(&ctx)
	name := t.Name()
	observer := d.cfg.Observer

	var span observability.Span
	if observer != nil {
		ctx = observability.ContextWithObserver(ctx, observer)
		ctx, span = observer.StartSpan(ctx, observability.SpanExtractField,
			observability.String(observability.AttrFieldName, name),
			observability.String(observability.AttrFieldKind, string(t.Kind)),
			observability.Int(observability.AttrMaxAttempts, d.cfg.MaxAttempts),
		)
		defer span.End()
	}

	prompt := d.cfg.Prompts(req, t)
	kindAttr := observability.String(observability.AttrFieldKind, string(t.Kind))

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ov.AddAttempt()
		if span != nil {
			span.AddEvent(observability.EventAttempt,
				observability.Int(observability.AttrAttempt, attempt),
				observability.Int(observability.AttrPromptLength, len(prompt)),
			)
			observer.Counter(observability.MetricAttempts).Add(ctx, 1, kindAttr)
		}

		res, err := d.gen.Generate(ctx, prompt)
		if err == nil {
			err = res.Validate()
		}
		if err != nil {
			if span != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "generator failed")
			}
			return nil, fmt.Errorf("extract %s (attempt %d): %w", name, attempt, err)
		}

		if res.IsDetail() {
			ov.RecordField(name, attempt, overview.OutcomeDetail)
			if span != nil {
				span.AddEvent(observability.EventFieldDetail, observability.Int(observability.AttrAttempt, attempt))
				span.SetAttributes(observability.Bool(observability.AttrFieldDetail, true))
				span.SetStatus(observability.StatusOK, "detail")
				observer.Counter(observability.MetricFieldsDetail).Add(ctx, 1, kindAttr)
				observer.Warn(ctx, "Generator returned a detail",
					observability.String(observability.AttrFieldName, name),
					observability.String(observability.AttrFragment, truncate(*res.Detail)),
				)
			}
			return &Fragment{Kind: t.Kind, Fields: t.Names(), Text: *res.Detail, Detail: true, Attempts: attempt}, nil
		}

		cleaned := parse.CleanJSONStr(*res.Text)
		if parse.IsJSONLike(cleaned) {
			ov.RecordField(name, attempt, overview.OutcomeAccepted)
			if span != nil {
				span.AddEvent(observability.EventFieldAccepted,
					observability.Int(observability.AttrAttempt, attempt),
					observability.String(observability.AttrFragment, truncate(cleaned)),
				)
				span.SetStatus(observability.StatusOK, "accepted")
				observer.Counter(observability.MetricFieldsAccepted).Add(ctx, 1, kindAttr)
			}
			return &Fragment{Kind: t.Kind, Fields: t.Names(), Text: cleaned, Attempts: attempt}, nil
		}

		if span != nil {
			span.AddEvent(observability.EventAttemptRejected,
				observability.Int(observability.AttrAttempt, attempt),
				observability.String(observability.AttrFragment, truncate(cleaned)),
			)
		}
	}

	ov.RecordField(name, d.cfg.MaxAttempts, overview.OutcomeDropped)
	if span != nil {
		span.AddEvent(observability.EventFieldDropped)
		span.SetStatus(observability.StatusOK, "dropped")
		observer.Counter(observability.MetricFieldsDropped).Add(ctx, 1, kindAttr)
		observer.Info(ctx, "Field dropped after exhausting attempts",
			observability.String(observability.AttrFieldName, name),
			observability.Int(observability.AttrMaxAttempts, d.cfg.MaxAttempts),
		)
	}
	return nil, nil
}

// maxLoggedFragment bounds fragment text copied into events and logs.
const maxLoggedFragment = 200

func truncate(s string) string {
	return utils.TruncateString(s, maxLoggedFragment)
}
