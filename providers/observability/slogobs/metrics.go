package slogobs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/leofalp/fieldex/providers/observability"
)

// Counter returns the named counter, creating it on first use. Every Add is
// logged at DEBUG with the delta and the new total.
func (o *Observer) Counter(name string) observability.Counter {
	return o.metrics.counter(name)
}

// Histogram returns the named histogram, creating it on first use. Every
// Record is logged at DEBUG.
func (o *Observer) Histogram(name string) observability.Histogram {
	return o.metrics.histogram(name)
}

// CounterValue returns the total of the named counter, 0 if it was never
// used.
func (o *Observer) CounterValue(name string) int64 {
	c, ok := o.metrics.lookupCounter(name)
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// HistogramStats returns how many observations the named histogram received
// and their sum.
func (o *Observer) HistogramStats(name string) (count int64, sum float64) {
	h, ok := o.metrics.lookupHistogram(name)
	if !ok {
		return 0, 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count, h.sum
}

type registry struct {
	logger *slog.Logger

	mu         sync.Mutex
	counters   map[string]*counter
	histograms map[string]*histogram
}

func newRegistry(logger *slog.Logger) *registry {
	return &registry{
		logger:     logger,
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
}

func (r *registry) counter(name string) *counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	if !ok {
		c = &counter{name: name, logger: r.logger}
		r.counters[name] = c
	}
	return c
}

func (r *registry) histogram(name string) *histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.histograms[name]
	if !ok {
		h = &histogram{name: name, logger: r.logger}
		r.histograms[name] = h
	}
	return h
}

func (r *registry) lookupCounter(name string) (*counter, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	return c, ok
}

func (r *registry) lookupHistogram(name string) (*histogram, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.histograms[name]
	return h, ok
}

type counter struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	total int64
}

func (c *counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.total += value
	total := c.total
	c.mu.Unlock()

	c.logger.LogAttrs(ctx, slog.LevelDebug, "Counter", toSlog(attrs,
		slog.String("metric", c.name),
		slog.String("type", "counter"),
		slog.Int64("value", total),
		slog.Int64("delta", value),
	)...)
}

type histogram struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	count int64
	sum   float64
}

func (h *histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.mu.Lock()
	h.count++
	h.sum += value
	h.mu.Unlock()

	h.logger.LogAttrs(ctx, slog.LevelDebug, "Histogram", toSlog(attrs,
		slog.String("metric", h.name),
		slog.String("type", "histogram"),
		slog.Float64("value", value),
	)...)
}
