// Package score measures how closely an extracted record matches a ground
// truth record of the same schema.
//
// Every field scores in [0, 1] and the aggregate is the plain mean over all
// schema fields, so a field left absent counts as much as one answered
// wrongly. [Aggregator] accumulates results over repeated trials.
package score
