// Package entity defines the open record type shared by every merge stage.
//
// An Entity is a JSON object read from a source set (a building, an improvement,
// a unit or a nation). Fields are looked up through typed accessors which either
// return the value, report it absent, or fail with ErrMalformedFieldShape; no
// accessor coerces a value of the wrong category.
//
// # Immutability
//
// Merge stages never mutate an Entity in place. With, Without and Clone return
// independent deep copies, so a consolidated value can be kept while the next
// override is folded in.
//
// # Errors
//
//   - ErrMalformedFieldShape (FieldError): a field holds a value of the wrong category.
//   - ErrMissingBaseEntity (EntityError): a consolidated entry references a base that was never defined.
package entity
