// Package httpgen implements extract.Generator against an HTTP text
// generation endpoint.
//
// The endpoint receives POST {"prompt": "..."} and answers with either
// {"text": "..."} or {"detail": ...}. A non-2xx response whose JSON body
// carries a "detail" member is treated as an error detail as well, so
// refusals and rate-limit messages reach the extraction driver instead of
// aborting the session. Any other failure is a transport error.
//
// Configuration is read from FIELDEX_GENERATOR_URL and
// FIELDEX_GENERATOR_API_KEY and can be overridden with the With* methods:
//
//	gen := httpgen.New().WithBaseURL("http://localhost:8000/generate")
//	ex := extract.NewExtractor(gen)
package httpgen
