// Package extract drives a text generator field by field and assembles the
// answers into a typed record.
//
// A [Driver] asks the [Generator] for one scalar field, one list field or one
// start/end time pair at a time. Each completion is sanitised and classified;
// the first one that looks like a JSON object is kept as a [Fragment]. A field
// gets a fixed attempt budget (3 by default); when it runs out the field is
// dropped without an error. An error detail from the generator is accepted at
// once and ends the attempts for that field.
//
// An [Extractor] runs a whole session: it partitions the schema, runs the
// driver, parses every fragment and the object made of all fragments,
// merges the partial records and post-processes the result.
//
// Only contract violations surface as errors: a generator result that is
// neither text nor detail ([ErrContractViolation]), a generator transport
// error, examples that do not line up with the fields
// ([schema.ErrExampleMismatch]) and context cancellation.
package extract
