// Package schema defines the target shapes that extraction fills in.
//
// A [Schema] is an ordered table of [Field] descriptors. A [Record] is an
// instance of a schema holding exactly one [Value] per field, where every
// value is either present or explicitly absent. Absence is a first-class
// state: the zero [Value] is absent, and the literal text "None" or a JSON
// null are normalised to absent by [ValueFromRaw] rather than kept as
// sentinel strings.
//
// Schemas, example values and ground-truth records are supplied as
// configuration through a [Registry], usually loaded once at startup with
// [LoadRegistry] and never mutated afterwards.
package schema
