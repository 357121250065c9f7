package accumulator

import (
	"context"
	"slices"

	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/uniques"
)

// NationMerger builds the single combined nation. Only abilities are merged; every
// contributing nation also lends its first city and first spy name, reversed.
type NationMerger struct {
	nation  entity.Entity
	uniques *uniques.Merger
}

// NewNationMerger starts from a copy of template.
func NewNationMerger(template entity.Entity, merger *uniques.Merger) *NationMerger {
	if merger == nil {
		merger = uniques.NewMerger(nil, nil, nil)
	}
	return &NationMerger{nation: template.Clone(), uniques: merger}
}

// Add merges one nation. City-states are ignored.
func (n *NationMerger) Add(ctx context.Context, e entity.Entity) error {
	if e.Has(FieldCityStateType) {
		return nil
	}

	merged, err := mergeUniques(ctx, n.uniques, n.nation, e, nil)
	if err != nil {
		return &entity.EntityError{Kind: entity.KindNation, Name: e.Name(), Err: err}
	}
	for _, field := range []string{FieldCities, FieldSpyNames} {
		merged, err = appendDerived(merged, e, field)
		if err != nil {
			return &entity.EntityError{Kind: entity.KindNation, Name: e.Name(), Err: err}
		}
	}
	n.nation = merged
	return nil
}

// Nation returns a copy of the merged nation.
func (n *NationMerger) Nation() entity.Entity {
	return n.nation.Clone()
}

func appendDerived(nation, contributor entity.Entity, field string) (entity.Entity, error) {
	names, ok, err := contributor.Strings(field)
	if err != nil {
		return nil, err
	}
	if !ok || len(names) == 0 {
		return nation, nil
	}

	current, _, err := nation.Strings(field)
	if err != nil {
		return nil, err
	}
	derived := entity.DeriveName(names[0])
	if slices.Contains(current, derived) {
		return nation, nil
	}
	return nation.With(field, append(current, derived)), nil
}
