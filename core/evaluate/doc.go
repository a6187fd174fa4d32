// Package evaluate measures extraction quality against ground truth.
//
// A [Runner] extracts every ground-truth case of a schema entry several
// times, scores each result with score.CalculateMatchingPercentageInfo and
// aggregates the scores into a [Report]. Trials run concurrently up to the
// configured limit; each trial is an independent extraction session.
package evaluate
