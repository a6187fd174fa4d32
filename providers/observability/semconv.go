package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Extraction Attributes ---

const (
	// AttrSchemaName is the name of the target schema
	AttrSchemaName = "fieldex.schema"

	// AttrSessionID identifies one extraction session
	AttrSessionID = "fieldex.session.id"

	// AttrFieldName is the field (or comma-joined time pair) being extracted
	AttrFieldName = "fieldex.field"

	// AttrFieldNames lists the fields handled by one driver operation
	AttrFieldNames = "fieldex.fields"

	// AttrFieldKind is the driver operation: "field", "list" or "time"
	AttrFieldKind = "fieldex.field.kind"

	// AttrFieldDetail marks a field accepted from an error detail
	AttrFieldDetail = "fieldex.field.detail"

	// AttrAttempt is the 1-based attempt number for a field
	AttrAttempt = "fieldex.attempt"

	// AttrMaxAttempts is the attempt budget per field
	AttrMaxAttempts = "fieldex.attempts.max"

	// AttrFragment is the sanitized completion text (truncated)
	AttrFragment = "fieldex.fragment"

	// AttrFragmentCount is the number of fragments produced
	AttrFragmentCount = "fieldex.fragments"

	// AttrPresentFields is the number of present fields in a record
	AttrPresentFields = "fieldex.record.present"

	// AttrScore is a matching score in [0, 1]
	AttrScore = "fieldex.score"

	// AttrTrial is the trial index within an evaluation run
	AttrTrial = "fieldex.trial"

	// AttrPromptLength is the length of the prompt sent to the generator
	AttrPromptLength = "fieldex.prompt.length"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanExtractSession covers one full extraction session
	SpanExtractSession = "fieldex.extract"

	// SpanExtractField covers the attempts for one field or time pair
	SpanExtractField = "fieldex.extract.field"

	// SpanGenerate covers one call to the text generator
	SpanGenerate = "fieldex.generate"

	// SpanEvaluate covers one evaluation run
	SpanEvaluate = "fieldex.evaluate"
)

// --- Event Names ---

const (
	// EventAttempt marks one generator call for a field
	EventAttempt = "fieldex.attempt"

	// EventAttemptRejected marks a completion the classifier rejected
	EventAttemptRejected = "fieldex.attempt.rejected"

	// EventFieldAccepted marks a field accepted from a completion
	EventFieldAccepted = "fieldex.field.accepted"

	// EventFieldDetail marks a field accepted from an error detail
	EventFieldDetail = "fieldex.field.detail"

	// EventFieldDropped marks a field whose attempt budget ran out
	EventFieldDropped = "fieldex.field.dropped"

	// EventHTTPRequestStart marks the start of an outgoing HTTP request
	EventHTTPRequestStart = "http.request.start"

	// EventHTTPRequestEnd marks the end of an outgoing HTTP request
	EventHTTPRequestEnd = "http.request.end"
)

// --- Metric Names ---

const (
	// MetricAttempts counts generator calls
	MetricAttempts = "fieldex.attempts"

	// MetricFieldsAccepted counts fields accepted from completions
	MetricFieldsAccepted = "fieldex.fields.accepted"

	// MetricFieldsDetail counts fields accepted from error details
	MetricFieldsDetail = "fieldex.fields.detail"

	// MetricFieldsDropped counts fields dropped after exhausting attempts
	MetricFieldsDropped = "fieldex.fields.dropped"

	// MetricSessionDuration records extraction session duration in seconds
	MetricSessionDuration = "fieldex.session.duration"

	// MetricTrialScore records the aggregate score of each evaluation trial
	MetricTrialScore = "fieldex.trial.score"
)
