// Package merge combines the partial records produced for one extraction
// session and normalises the result.
//
// [CombineModels] is left-biased: for every field it keeps the first present
// value across the sequence, so callers must pass records ordered from most
// to least trusted. [PostProcessModel] then coerces numeric fields that the
// model answered with text, turning anything unparseable into absent.
package merge
