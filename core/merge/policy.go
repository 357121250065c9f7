package merge

import (
	"ruleset-combiner/core/entity"
)

// Policy combines one field of a base entity with the same field of an override
// and returns a new entity. Neither input is modified.
type Policy func(base, override entity.Entity, field string) (entity.Entity, error)

// Ordinals resolves tier names to their unlock ordinal.
type Ordinals interface {
	Ordinal(name string) (int, error)
}

// Fold applies a policy left to right across an override chain.
func Fold(policy Policy, field string, base entity.Entity, overrides ...entity.Entity) (entity.Entity, error) {
	result := base
	for _, o := range overrides {
		var err error
		result, err = policy(result, o, field)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Gain keeps the larger value; a one-sided value survives only when positive.
func Gain(base, override entity.Entity, field string) (entity.Entity, error) {
	return numeric(base, override, field, func(v float64) bool { return v > 0 })
}

// Cost keeps the larger value of two present costs, which is the weaker downgrade;
// a one-sided value survives only when negative.
func Cost(base, override entity.Entity, field string) (entity.Entity, error) {
	return numeric(base, override, field, func(v float64) bool { return v < 0 })
}

func numeric(base, override entity.Entity, field string, keep func(float64) bool) (entity.Entity, error) {
	b, okB, err := base.Number(field)
	if err != nil {
		return nil, err
	}
	o, okO, err := override.Number(field)
	if err != nil {
		return nil, err
	}
	v, ok := pick(b, okB, o, okO, keep)
	if !ok {
		return base.Without(field), nil
	}
	return base.With(field, v), nil
}

func pick(b float64, okB bool, o float64, okO bool, keep func(float64) bool) (float64, bool) {
	switch {
	case okB && okO:
		return max(b, o), true
	case okO:
		return o, keep(o)
	case okB:
		return b, keep(b)
	default:
		return 0, false
	}
}

// MultiGain merges a keyed set of gains. The override's absence leaves the base
// untouched; otherwise every sub-key of either side goes through the Gain rule.
func MultiGain(base, override entity.Entity, field string) (entity.Entity, error) {
	o, okO, err := override.NumberMap(field)
	if err != nil {
		return nil, err
	}
	if !okO {
		return base.Clone(), nil
	}
	b, _, err := base.NumberMap(field)
	if err != nil {
		return nil, err
	}

	positive := func(v float64) bool { return v > 0 }
	out := make(map[string]any)
	for key, bv := range b {
		ov, has := o[key]
		if v, ok := pick(bv, true, ov, has, positive); ok {
			out[key] = v
		}
	}
	for key, ov := range o {
		if _, seen := b[key]; seen {
			continue
		}
		if v, ok := pick(0, false, ov, true, positive); ok {
			out[key] = v
		}
	}

	if len(out) == 0 {
		return base.Without(field), nil
	}
	return base.With(field, out), nil
}

// ListUnion merges two token lists into their set union: base tokens first, then
// tokens only the override carries.
func ListUnion(base, override entity.Entity, field string) (entity.Entity, error) {
	b, okB, err := base.Strings(field)
	if err != nil {
		return nil, err
	}
	o, okO, err := override.Strings(field)
	if err != nil {
		return nil, err
	}

	if !okO {
		if okB && len(b) == 0 {
			return base.Without(field), nil
		}
		return base.Clone(), nil
	}

	out := union(b, o)
	if len(out) == 0 {
		return base.Without(field), nil
	}
	return base.With(field, out), nil
}

func union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
