// Package techorder turns a tier list (the tech tree) into a monotonic ordinal lookup.
//
// Merge policies that compare "requires tech T" or "obsoleted by tech T" fields ask
// the Ordering for the ordinal of each name. The table must be built from the complete
// tier list before any merge; looking up a name that was never registered fails with
// ErrUnknownTier.
//
// # Usage
//
//	tiers, err := techorder.FromTechTree(data) // Techs.json
//	ord := techorder.Build(tiers)
//	n, err := ord.Ordinal("Bronze Working")
package techorder
