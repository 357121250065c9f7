// Package merge provides the field merge policies applied when an override entity is
// folded into a consolidated entity.
//
// Every policy has the shape Policy(base, override, field) and returns a new entity.
// Absence of a field is a valid state and never an error; a value of the wrong
// category fails with entity.ErrMalformedFieldShape.
//
// # Policies
//
//   - Gain: higher is better. Both present keeps the max; a one-sided value survives only if > 0.
//   - Cost: both present keeps the max (the weaker cost); a one-sided value survives only if < 0.
//   - MultiGain: Gain applied per sub-key of an object; a missing override leaves the base as is.
//   - ListUnion: set union of two token lists.
//   - EarliestOrdinal: the earlier tier wins; a base-only tier is dropped.
//   - LatestOrdinal: the later tier wins; an override-only tier is adopted, a base-only tier is dropped.
//
// Policies are applied pairwise left to right with Fold. Gain and Cost are commutative
// and associative, so the order of overrides does not change their result; the other
// policies are order-sensitive and callers must fold overrides in a stable order.
package merge
