// Package uniques merges free-text ability strings ("uniques").
//
// Abilities are compared structurally: Normalize empties bracketed parameters, strips
// trailing <conditional> clauses and lowercases, so "[+2] Sight <for [Mounted] units>"
// and "[+1] Sight" share the key "[] sight". Display always uses the text as written.
//
// # Lists
//
// The known list holds every ability the target ruleset understands; anything else is
// handed to a Resolver. The unwanted list names abilities that should not accumulate
// across overrides.
//
// # Resolvers
//
//   - RejectAll / AcceptAll: batch and test use.
//   - Lookup: precomputed decisions, typically loaded from a YAML file with LoadDecisions.
//   - Prompt: interactive Y/n confirmation, with a closest-match hint from the known list.
//   - Memo: asks the wrapped resolver once per text and remembers the answer.
//   - Recorder: rejects and records, for reporting unknown abilities.
package uniques
