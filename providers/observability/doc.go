// Package observability is the tracing, metrics and logging seam of fieldex.
//
// Extraction components accept an optional [Provider] and stay silent when
// it is nil. A provider travels with the request through [ContextWithObserver]
// so nested calls such as the HTTP generator pick it up, and the active span
// travels through [ContextWithSpan] so low-level helpers can add events to it.
//
// Span, event, metric and attribute names live in semconv.go.
package observability
