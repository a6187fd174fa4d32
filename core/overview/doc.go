// Package overview provides lifecycle tracking for extraction sessions.
// It collects the generator calls spent, the outcome of every field and the
// duration of a single run.
// The central type is [Overview]; use [OverviewFromContext] to obtain or create
// an instance bound to a [context.Context].
package overview
