package evaluate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/fieldex/core/extract"
	"github.com/leofalp/fieldex/core/overview"
	"github.com/leofalp/fieldex/core/schema"
	"github.com/leofalp/fieldex/core/score"
	"github.com/leofalp/fieldex/providers/observability"
)

const (
	// DefaultTrials is the number of extractions per ground-truth case.
	DefaultTrials = 3
	// DefaultConcurrency is the number of trials run at once.
	DefaultConcurrency = 4
)

// ErrNoCases is returned when the entry has no ground-truth cases.
var ErrNoCases = errors.New("fieldex: schema has no ground-truth cases")

// Config holds the evaluation parameters.
type Config struct {
	// Trials is the number of extractions per case. Default: 3.
	Trials int
	// Concurrency bounds the trials running at once. Default: 4.
	Concurrency int
	// Observer receives the evaluation span and per-trial scores.
	Observer observability.Provider
}

func (c *Config) applyDefaults() {
	if c.Trials <= 0 {
		c.Trials = DefaultTrials
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
}

// Option configures a Runner.
type Option func(*Config)

// WithTrials sets the number of extractions per case.
func WithTrials(n int) Option {
	return func(c *Config) {
		c.Trials = n
	}
}

// WithConcurrency sets how many trials run at once.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// WithObserver sets the observability provider.
func WithObserver(observer observability.Provider) Option {
	return func(c *Config) {
		c.Observer = observer
	}
}

// Trial is the outcome of one extraction of one case.
type Trial struct {
	ID    string `json:"id"`
	Case  int    `json:"case"`
	Index int    `json:"index"`
	// Result is nil when the extraction failed.
	Result   *score.MatchResult `json:"result,omitempty"`
	Overview *overview.Overview `json:"overview,omitempty"`
	Err      string             `json:"error,omitempty"`
}

// Failed reports whether the extraction returned an error.
func (t Trial) Failed() bool {
	return t.Err != ""
}

// Report is the result of a [Runner.Run].
type Report struct {
	RunID    string        `json:"run_id"`
	Schema   string        `json:"schema"`
	Cases    int           `json:"cases"`
	Trials   []Trial       `json:"trials"`
	Failed   int           `json:"failed"`
	Summary  score.Summary `json:"summary"`
	Duration time.Duration `json:"duration"`
}

// Runner evaluates an extractor against ground truth.
type Runner struct {
	extractor *extract.Extractor
	cfg       Config
}

// NewRunner returns a runner for ex.
func NewRunner(ex *extract.Extractor, opts ...Option) *Runner {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()
	return &Runner{extractor: ex, cfg: cfg}
}

// Run extracts every case of entry Trials times and scores the results.
// Trials whose extraction fails are reported but not scored; only context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, entry *schema.Entry) (*Report, error) {
	if entry == nil || entry.Schema == nil {
		return nil, fmt.Errorf("%w: nil schema entry", schema.ErrInvalidSchema)
	}
	truths := entry.Records()
	if len(truths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCases, entry.Schema.Name)
	}

	start := time.Now()
	report := &Report{
		RunID:  uuid.NewString(),
		Schema: entry.Schema.Name,
		Cases:  len(truths),
		Trials: make([]Trial, len(truths)*r.cfg.Trials),
	}

	observer := r.cfg.Observer
	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanEvaluate,
			observability.String(observability.AttrSchemaName, entry.Schema.Name),
			observability.Int(observability.AttrTrial, r.cfg.Trials),
		)
		defer span.End()
	}

	agg := score.NewAggregator()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for c, truth := range truths {
		for i := range r.cfg.Trials {
			slot := c*r.cfg.Trials + i
			g.Go(func() error {
				trial, err := r.trial(gctx, entry, c, i, truth)
				if err != nil {
					return err
				}
				report.Trials[slot] = trial
				agg.Add(trial.Result)
				if observer != nil && trial.Result != nil {
					observer.Histogram(observability.MetricTrialScore).Record(gctx, trial.Result.Aggregate,
						observability.String(observability.AttrSchemaName, entry.Schema.Name),
					)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "evaluation aborted")
		}
		return nil, err
	}

	for _, t := range report.Trials {
		if t.Failed() {
			report.Failed++
		}
	}
	report.Summary = agg.Summary()
	report.Duration = time.Since(start)

	if span != nil {
		span.SetAttributes(observability.Float64(observability.AttrScore, report.Summary.Mean))
		span.SetStatus(observability.StatusOK, "")
		observer.Info(ctx, "Evaluation completed",
			observability.String(observability.AttrSchemaName, report.Schema),
			observability.Int(observability.AttrTrial, len(report.Trials)),
			observability.Float64(observability.AttrScore, report.Summary.Mean),
			observability.Duration(observability.AttrDuration, report.Duration),
		)
	}
	return report, nil
}

// trial runs one extraction. The returned error is non-nil only when ctx is
// done; other extraction failures are recorded on the trial.
func (r *Runner) trial(ctx context.Context, entry *schema.Entry, caseIndex, index int, truth *schema.Record) (Trial, error) {
	ov := overview.New()
	trial := Trial{ID: ov.SessionID, Case: caseIndex, Index: index, Overview: ov}

	extraction, err := r.extractor.Extract(ov.ToContext(ctx), entry, entry.GroundTruth[caseIndex].Prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return trial, ctxErr
		}
		trial.Err = err.Error()
		if r.cfg.Observer != nil {
			r.cfg.Observer.Warn(ctx, "Trial failed",
				observability.String(observability.AttrSessionID, trial.ID),
				observability.Int(observability.AttrTrial, index),
				observability.Error(err),
			)
		}
		return trial, nil
	}

	result, err := score.CalculateMatchingPercentageInfo(extraction.Record, truth)
	if err != nil {
		trial.Err = err.Error()
		return trial, nil
	}
	trial.Result = result
	return trial, nil
}
