// Package accumulator folds override entities into consolidated entities.
//
// Every kind keeps two maps: base entities (no replaces reference) by name, and the
// running merge result per replaced base name. The first override of a base seeds the
// result with a derived name and the owner marker; later overrides are merged field by
// field following the kind's FieldTable. Finalize folds the base in last.
//
// Nations take a simpler path through NationMerger.
package accumulator
