// Package parse turns noisy model output into decoded JSON.
//
// The pipeline has three stages that callers usually run in order:
// [CleanJSONStr] normalises a fragment (comments, trailing commas, stray
// periods), [IsJSONLike] decides whether the result is worth parsing at all,
// and [ParsePartialJSON] / [GetPartialJSON] decode it, tolerating a dangling
// comma or missing closing tokens from a truncated generation.
//
// Parse failures are expected outcomes for generated text, so the parsers
// report them as a false ok value rather than an error. [ParseStringAs] is the
// typed counterpart used for scalar coercion; it does return errors.
package parse
