package merge

import (
	"fmt"

	"ruleset-combiner/core/entity"
)

// EarliestOrdinal keeps the tier that unlocks first. When only the base names a tier
// the field is dropped: an override with no requirement lifts the requirement.
func EarliestOrdinal(ord Ordinals) Policy {
	return func(base, override entity.Entity, field string) (entity.Entity, error) {
		b, okB, err := base.String(field)
		if err != nil {
			return nil, err
		}
		o, okO, err := override.String(field)
		if err != nil {
			return nil, err
		}

		switch {
		case okB && okO:
			earlier, err := compare(ord, field, base, b, override, o)
			if err != nil {
				return nil, err
			}
			if earlier > 0 {
				return base.With(field, o), nil
			}
			return base.Clone(), nil
		case okO:
			return base.With(field, o), nil
		default:
			return base.Without(field), nil
		}
	}
}

// LatestOrdinal keeps the tier that unlocks last. The override's tier is adopted when
// the base has none; a base tier without an override tier is dropped.
func LatestOrdinal(ord Ordinals) Policy {
	return func(base, override entity.Entity, field string) (entity.Entity, error) {
		b, okB, err := base.String(field)
		if err != nil {
			return nil, err
		}
		o, okO, err := override.String(field)
		if err != nil {
			return nil, err
		}

		switch {
		case okB && okO:
			cmp, err := compare(ord, field, base, b, override, o)
			if err != nil {
				return nil, err
			}
			if cmp < 0 {
				return base.With(field, o), nil
			}
			return base.Clone(), nil
		case okO:
			return base.With(field, o), nil
		default:
			return base.Without(field), nil
		}
	}
}

// compare returns the sign of ordinal(b) - ordinal(o).
func compare(ord Ordinals, field string, base entity.Entity, b string, override entity.Entity, o string) (int, error) {
	bo, err := ord.Ordinal(b)
	if err != nil {
		return 0, fmt.Errorf("field %q of %q: %w", field, base.Name(), err)
	}
	oo, err := ord.Ordinal(o)
	if err != nil {
		return 0, fmt.Errorf("field %q of %q: %w", field, override.Name(), err)
	}
	switch {
	case bo > oo:
		return 1, nil
	case bo < oo:
		return -1, nil
	default:
		return 0, nil
	}
}
