package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leofalp/fieldex/core/merge"
	"github.com/leofalp/fieldex/core/overview"
	"github.com/leofalp/fieldex/core/parse"
	"github.com/leofalp/fieldex/core/schema"
	"github.com/leofalp/fieldex/providers/observability"
)

// Extraction is the outcome of one session.
type Extraction struct {
	Record    *schema.Record
	Fragments []Fragment
	Overview  *overview.Overview
}

// Extractor runs full extraction sessions: it splits a schema into scalar
// fields, list fields and time pairs, drives the generator for each and
// merges the parsed fragments into one record.
type Extractor struct {
	driver *Driver
	cfg    Config
}

// NewExtractor returns an extractor backed by gen.
func NewExtractor(gen Generator, opts ...Option) *Extractor {
	cfg := newConfig(opts...)
	return &Extractor{
		driver: &Driver{gen: gen, cfg: cfg},
		cfg:    cfg,
	}
}

// Extract runs one session for entry against prompt. Fields whose attempts
// are exhausted come back absent; only generator transport errors, contract
// violations, missing examples and context cancellation return an error.
//
// The session overview is taken from ctx when present, so callers can read
// attempt counts even when Extract fails.
func (e *Extractor) Extract(ctx context.Context, entry *schema.Entry, prompt string) (*Extraction, error) {
	if entry == nil || entry.Schema == nil {
		return nil, fmt.Errorf("%w: nil schema entry", schema.ErrInvalidSchema)
	}
	sc := entry.Schema

	ov := overview.OverviewFromContext(&ctx)
	ov.SetSchema(sc.Name)
	ov.StartExecution()
	defer ov.EndExecution()

	observer := e.cfg.Observer
	var span observability.Span
	if observer != nil {
		ctx = observability.ContextWithObserver(ctx, observer)
		ctx, span = observer.StartSpan(ctx, observability.SpanExtractSession,
			observability.String(observability.AttrSchemaName, sc.Name),
			observability.String(observability.AttrSessionID, ov.SessionID),
		)
		defer span.End()
		observer.Debug(ctx, "Extraction session started",
			observability.String(observability.AttrSchemaName, sc.Name),
			observability.Int(observability.AttrPromptLength, len(prompt)),
		)
	}

	fragments, err := e.collect(ctx, entry, prompt)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "extraction failed")
			observer.Error(ctx, "Extraction session failed",
				observability.String(observability.AttrSchemaName, sc.Name),
				observability.Error(err),
			)
		}
		return nil, err
	}

	var parseOpts []parse.Option
	if e.cfg.Repair {
		parseOpts = append(parseOpts, parse.WithRepair())
	}
	record, err := BuildRecord(sc, fragments, parseOpts...)
	if err != nil {
		return nil, err
	}
	ov.SetResult(len(fragments), record.Present())

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrFragmentCount, len(fragments)),
			observability.Int(observability.AttrPresentFields, record.Present()),
		)
		span.SetStatus(observability.StatusOK, "")
		observer.Histogram(observability.MetricSessionDuration).Record(ctx,
			time.Since(ov.ExecutionStartTime).Seconds(),
			observability.String(observability.AttrSchemaName, sc.Name),
		)
		observer.Info(ctx, "Extraction session completed",
			observability.String(observability.AttrSchemaName, sc.Name),
			observability.Int(observability.AttrFragmentCount, len(fragments)),
			observability.Int(observability.AttrPresentFields, record.Present()),
			observability.StringSlice(observability.AttrFieldNames, ov.FieldsWith(overview.OutcomeDropped)),
		)
	}

	return &Extraction{Record: record, Fragments: fragments, Overview: ov}, nil
}

// collect runs the three driver operations in order: scalars, lists, time
// pairs.
func (e *Extractor) collect(ctx context.Context, entry *schema.Entry, prompt string) ([]Fragment, error) {
	req := Request{Schema: entry.Schema, Prompt: prompt}
	scalars, lists, pairs := entry.Schema.Partition()

	scalarExamples, err := entry.ExamplesFor(scalars)
	if err != nil {
		return nil, err
	}
	listExamples, err := entry.ExamplesFor(lists)
	if err != nil {
		return nil, err
	}
	pairExamples := make([][2]string, len(pairs))
	for i, p := range pairs {
		start, okStart := entry.Example(p.Start)
		end, okEnd := entry.Example(p.End)
		if !okStart || !okEnd {
			return nil, fmt.Errorf("%w: no example for time pair %s/%s", schema.ErrExampleMismatch, p.Start, p.End)
		}
		pairExamples[i] = [2]string{start, end}
	}

	var fragments []Fragment
	for _, step := range []func() ([]Fragment, error){
		func() ([]Fragment, error) { return e.driver.ProcessFields(ctx, req, scalars, scalarExamples) },
		func() ([]Fragment, error) { return e.driver.ProcessLists(ctx, req, lists, listExamples) },
		func() ([]Fragment, error) { return e.driver.ProcessTimes(ctx, req, pairs, pairExamples) },
	} {
		got, err := step()
		fragments = append(fragments, got...)
		if err != nil {
			return fragments, err
		}
	}
	return fragments, nil
}

// BuildRecord turns accepted fragments into one record. Each fragment is
// parsed on its own; the non-detail fragments are also joined into a single
// object and parsed as a whole. The per-fragment records take priority over
// the combined one, and numeric text is coerced at the end. Fragments that
// cannot be parsed contribute nothing.
func BuildRecord(sc *schema.Schema, fragments []Fragment, opts ...parse.Option) (*schema.Record, error) {
	records := make([]*schema.Record, 0, len(fragments)+1)
	for _, f := range fragments {
		if r, ok := parse.GetPartialJSON(f.Text, sc, opts...); ok {
			records = append(records, r)
		}
	}
	if combined := combineFragments(fragments); combined != "" {
		if r, ok := parse.GetPartialJSON(combined, sc, opts...); ok {
			records = append(records, r)
		}
	}

	merged, err := merge.CombineModels(records...)
	switch {
	case errors.Is(err, merge.ErrEmptySequence):
		merged = schema.NewRecord(sc)
	case err != nil:
		return nil, err
	}
	return merge.PostProcessModel(merged), nil
}

// combineFragments joins the members of every non-detail fragment into one
// JSON object text. It returns "" when there is nothing to join.
func combineFragments(fragments []Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.Detail {
			continue
		}
		inner := strings.TrimSpace(f.Text)
		inner = strings.TrimSpace(strings.TrimSuffix(inner, ","))
		inner = strings.TrimPrefix(inner, "{")
		inner = strings.TrimSuffix(inner, "}")
		inner = strings.TrimSuffix(strings.TrimSpace(inner), ",")
		if inner = strings.TrimSpace(inner); inner != "" {
			parts = append(parts, inner)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
