package uniques

import (
	"context"
	"strings"
)

// Substitution replaces every occurrence of Old with New in override ability text.
type Substitution struct {
	Old string
	New string
}

// Merger combines ability lists using a known list, an unwanted list and a Resolver
// for abilities the known list does not cover.
type Merger struct {
	known    List
	unwanted List
	resolver Resolver
}

// NewMerger creates a Merger. A nil resolver rejects every unknown ability.
func NewMerger(known, unwanted List, resolver Resolver) *Merger {
	if resolver == nil {
		resolver = RejectAll
	}
	return &Merger{known: known, unwanted: unwanted, resolver: resolver}
}

// Known returns the known list.
func (m *Merger) Known() List {
	return m.known
}

// Merge combines the abilities of a consolidated entity (base) with those of an override.
//
// Override texts are first rewritten with subs, then checked against the known list;
// unknown ones are kept only if the Resolver says so. Unwanted forms carried by only
// one side are removed from that side; when both sides carry one, the base copy is
// evicted in favour of the override's. The result is the deduplicated union, base
// first. Resolver errors are returned unchanged.
func (m *Merger) Merge(ctx context.Context, base, override []string, subs []Substitution) ([]string, error) {
	rewritten := make([]string, len(override))
	for i, s := range override {
		rewritten[i] = substitute(s, subs)
	}

	accepted, err := m.Filter(ctx, rewritten)
	if err != nil {
		return nil, err
	}

	oldAbilities := parseAll(base)
	newAbilities := parseAll(accepted)
	for key := range m.unwanted {
		inOld := containsKey(oldAbilities, key)
		inNew := containsKey(newAbilities, key)
		switch {
		case inOld:
			oldAbilities = removeKey(oldAbilities, key)
		case inNew:
			newAbilities = removeKey(newAbilities, key)
		}
	}

	return dedupe(oldAbilities, newAbilities), nil
}

// Filter keeps the texts whose normalized form is known and asks the Resolver about the rest.
func (m *Merger) Filter(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, 0, len(texts))
	for _, s := range texts {
		if m.known.Contains(s) {
			out = append(out, s)
			continue
		}
		keep, err := m.resolver.Resolve(ctx, s)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, s)
		}
	}
	return out, nil
}

func substitute(s string, subs []Substitution) string {
	for _, sub := range subs {
		if sub.Old == "" || sub.Old == sub.New {
			continue
		}
		s = strings.ReplaceAll(s, sub.Old, sub.New)
	}
	return s
}

func containsKey(list []Ability, key Key) bool {
	for _, a := range list {
		if a.Key == key {
			return true
		}
	}
	return false
}

func removeKey(list []Ability, key Key) []Ability {
	out := make([]Ability, 0, len(list))
	for _, a := range list {
		if a.Key != key {
			out = append(out, a)
		}
	}
	return out
}

// Distinct returns texts without literal repeats, keeping first occurrences in order.
func Distinct(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	out := make([]string, 0, len(texts))
	for _, s := range texts {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func dedupe(lists ...[]Ability) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, a := range list {
			if _, ok := seen[a.Display]; ok {
				continue
			}
			seen[a.Display] = struct{}{}
			out = append(out, a.Display)
		}
	}
	return out
}
