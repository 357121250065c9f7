package variant

import (
	"errors"
	"fmt"
	"strings"

	"ruleset-combiner/core/entity"
)

// DefaultTransform is the ability granted to every variant for each of its siblings.
const DefaultTransform = "Can transform to [%s] <in [Friendly Land] tiles>"

// NoUpgrade marks a variant without an upgrade when the base unit has one.
const NoUpgrade = "No Upgrade"

// ErrNoVariants is returned when a unit carries no (type, upgrade) pair to explode.
var ErrNoVariants = errors.New("unit has no type variants")

// Options tune the explosion.
type Options struct {
	// Transform is a format string with one %s verb for the sibling name.
	// Defaults to DefaultTransform.
	Transform string
}

// Record is one concrete unit produced from a consolidated unit.
type Record struct {
	Entity entity.Entity
	// SourceName is the base unit name, used to locate assets.
	SourceName string
	// Name is the synthesized display name.
	Name    string
	Variant entity.Variant
}

// Explode turns a consolidated unit carrying several (type, upgrade) pairs into one
// record per pair.
//
// Records are named by Name. When there is more than one pair every record can transform
// into each of its siblings, and only the record whose pair equals the base unit's
// (unitType, upgradesTo) keeps the replaces reference. Abilities never repeat.
func Explode(unit entity.Entity, variants []entity.Variant, base entity.Entity, opts Options) ([]Record, error) {
	if len(variants) == 0 {
		return nil, &entity.EntityError{Kind: entity.KindUnit, Name: unit.Name(), Err: ErrNoVariants}
	}
	if opts.Transform == "" {
		opts.Transform = DefaultTransform
	}

	baseType, _, err := base.String(entity.FieldUnitType)
	if err != nil {
		return nil, &entity.EntityError{Kind: entity.KindUnit, Name: base.Name(), Err: err}
	}
	baseUpgrade, _, err := base.String(entity.FieldUpgradesTo)
	if err != nil {
		return nil, &entity.EntityError{Kind: entity.KindUnit, Name: base.Name(), Err: err}
	}
	existing, _, err := unit.Strings(entity.FieldUniques)
	if err != nil {
		return nil, &entity.EntityError{Kind: entity.KindUnit, Name: unit.Name(), Err: err}
	}

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = Name(unit.Name(), v, baseType, baseUpgrade)
	}

	multi := len(variants) > 1
	keeper := entity.Variant{Type: baseType, Upgrade: baseUpgrade}
	records := make([]Record, len(variants))
	for i, v := range variants {
		rec := unit.Clone()
		rec[entity.FieldName] = names[i]
		rec[entity.FieldUnitType] = v.Type
		if v.Upgrade != "" {
			rec[entity.FieldUpgradesTo] = v.Upgrade
		} else {
			delete(rec, entity.FieldUpgradesTo)
		}

		if abilities := siblings(existing, names, i, opts.Transform); len(abilities) > 0 {
			rec[entity.FieldUniques] = abilities
		}
		if multi && v != keeper {
			delete(rec, entity.FieldReplaces)
		}

		records[i] = Record{
			Entity:     rec,
			SourceName: base.Name(),
			Name:       names[i],
			Variant:    v,
		}
	}
	return records, nil
}

// Name synthesizes the display name of one variant: the unit name with a parenthesized
// suffix listing the type when it differs from the base unit's type and the upgrade when
// it differs from the base unit's upgrade. A missing upgrade where the base has one reads
// NoUpgrade, so distinct pairs never share a name.
func Name(unitName string, v entity.Variant, baseType, baseUpgrade string) string {
	var parts []string
	if v.Type != baseType {
		parts = append(parts, v.Type)
	}
	switch {
	case v.Upgrade == baseUpgrade:
	case v.Upgrade == "":
		parts = append(parts, NoUpgrade)
	default:
		parts = append(parts, v.Upgrade)
	}
	if len(parts) == 0 {
		return unitName
	}
	return fmt.Sprintf("%s (%s)", unitName, strings.Join(parts, " "))
}

// siblings returns the unit's own abilities followed by one transform ability per
// sibling, skipping the record itself and any duplicate.
func siblings(existing, names []string, self int, format string) []string {
	out := make([]string, 0, len(existing)+len(names)-1)
	seen := make(map[string]struct{}, cap(out))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, s := range existing {
		add(s)
	}
	for i, name := range names {
		if i == self {
			continue
		}
		add(fmt.Sprintf(format, name))
	}
	return out
}
