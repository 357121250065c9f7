package accumulator

import (
	"context"
	"fmt"

	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/merge"
	"ruleset-combiner/core/techorder"
	"ruleset-combiner/core/uniques"
)

// Options control naming and ownership of consolidated entities.
type Options struct {
	// Owner is written to uniqueTo on every consolidated entity. Empty leaves uniqueTo as seeded.
	Owner string
	// Namer derives the consolidated display name from the base name. Defaults to entity.DeriveName.
	Namer func(string) string
	// Nation is the template the merged nation starts from.
	Nation entity.Entity
}

// Consolidated is one finalized merge result.
type Consolidated struct {
	Kind entity.Kind
	// SourceName is the name of the base entity (or of the standalone entity) the result derives from.
	SourceName string
	Entity     entity.Entity
	// Variants holds the accumulated (unitType, upgradesTo) pairs of a unit.
	Variants []entity.Variant
	// Base is the base entity folded in at finalization; nil for standalone entries.
	Base entity.Entity
}

type entry struct {
	entity     entity.Entity
	variants   []entity.Variant
	standalone bool
}

type collection struct {
	bases   map[string]entity.Entity
	entries map[string]*entry
	order   []string
}

// Accumulator folds override entities into one consolidated entity per base name.
// It is not safe for concurrent use; results depend on the order of Add calls.
type Accumulator struct {
	ordering merge.Ordinals
	uniques  *uniques.Merger
	opts     Options
	kinds    map[entity.Kind]*collection
	nation   *NationMerger
}

// New creates an Accumulator. ordering resolves tech names for the ordinal fields and
// merger combines ability lists.
func New(ordering merge.Ordinals, merger *uniques.Merger, opts Options) *Accumulator {
	if opts.Namer == nil {
		opts.Namer = entity.DeriveName
	}
	if ordering == nil {
		ordering = techorder.Build(nil)
	}
	if merger == nil {
		merger = uniques.NewMerger(nil, nil, nil)
	}
	template := opts.Nation
	if template == nil {
		template = entity.Entity{entity.FieldName: opts.Owner}
	}
	return &Accumulator{
		ordering: ordering,
		uniques:  merger,
		opts:     opts,
		kinds:    make(map[entity.Kind]*collection),
		nation:   NewNationMerger(template, merger),
	}
}

// Add feeds one entity of the given kind.
//
// Entities without a replaces reference register as bases. The first override of a base
// seeds the consolidated entry; later ones are merged into it field by field. Unique
// improvements (uniqueTo set, nothing replaced) are consolidated under their own name.
// Nations go through the simplified nation merge.
func (a *Accumulator) Add(ctx context.Context, kind entity.Kind, e entity.Entity) error {
	if kind == entity.KindNation {
		return a.nation.Add(ctx, e)
	}
	table, ok := tables[kind]
	if !ok {
		return fmt.Errorf("accumulator: unsupported kind %q", kind)
	}
	c := a.collection(kind)

	baseName, isOverride := e.Replaces()
	if !isOverride {
		name := e.Name()
		if name == "" {
			return &entity.EntityError{Kind: kind, Err: &entity.FieldError{Field: entity.FieldName, Want: "string", Got: e[entity.FieldName]}}
		}
		if kind == entity.KindImprovement && e.Has(entity.FieldUniqueTo) {
			return a.add(ctx, kind, table, c, name, e, true)
		}
		c.bases[name] = e.Clone()
		return nil
	}
	return a.add(ctx, kind, table, c, baseName, e, false)
}

func (a *Accumulator) add(ctx context.Context, kind entity.Kind, table FieldTable, c *collection, key string, e entity.Entity, standalone bool) error {
	cur, exists := c.entries[key]
	if !exists {
		seeded, err := a.seed(table, key, e)
		if err != nil {
			return &entity.EntityError{Kind: kind, Name: e.Name(), Err: err}
		}
		seeded.standalone = standalone
		c.entries[key] = seeded
		c.order = append(c.order, key)
		return nil
	}

	subs := []uniques.Substitution{{Old: e.Name(), New: cur.entity.Name()}}
	merged, err := a.merge(ctx, table, cur, e, subs)
	if err != nil {
		return &entity.EntityError{Kind: kind, Name: e.Name(), Err: err}
	}
	merged.standalone = cur.standalone
	c.entries[key] = merged
	return nil
}

func (a *Accumulator) seed(table FieldTable, key string, e entity.Entity) (*entry, error) {
	seeded := e.Clone()
	seeded[entity.FieldName] = a.opts.Namer(key)
	if a.opts.Owner != "" {
		seeded[entity.FieldUniqueTo] = a.opts.Owner
	}
	list, ok, err := e.Strings(entity.FieldUniques)
	if err != nil {
		return nil, err
	}
	if ok {
		seeded[entity.FieldUniques] = uniques.Distinct(list)
	}

	out := &entry{entity: seeded}
	if table.Variants {
		v, err := entity.VariantOf(e)
		if err != nil {
			return nil, err
		}
		out.variants = []entity.Variant{v}
		delete(seeded, entity.FieldUnitType)
		delete(seeded, entity.FieldUpgradesTo)
	}
	return out, nil
}

// merge folds one override into the current entry and returns a new entry.
func (a *Accumulator) merge(ctx context.Context, table FieldTable, cur *entry, override entity.Entity, subs []uniques.Substitution) (*entry, error) {
	result := cur.entity
	var err error

	apply := func(policy merge.Policy, fields ...string) {
		for _, f := range fields {
			if err != nil || f == "" {
				return
			}
			result, err = policy(result, override, f)
		}
	}
	apply(merge.Gain, table.Gain...)
	apply(merge.Cost, table.Cost...)
	apply(merge.MultiGain, table.MultiGain...)
	apply(merge.ListUnion, table.ListUnion...)
	apply(merge.EarliestOrdinal(a.ordering), table.Earliest)
	apply(merge.LatestOrdinal(a.ordering), table.Latest)
	if err != nil {
		return nil, err
	}

	result, err = mergeUniques(ctx, a.uniques, result, override, subs)
	if err != nil {
		return nil, err
	}

	variants := cur.variants
	if table.Variants {
		v, err := entity.VariantOf(override)
		if err != nil {
			return nil, err
		}
		variants = entity.AddVariant(variants, v)
	}

	if rr := table.RequiredResource; rr != "" && result.Has(rr) && !override.Has(rr) {
		result = result.Without(rr)
	}

	return &entry{entity: result, variants: variants}, nil
}

// Finalize folds each consolidated entry's base entity in as a last override and returns
// the results in order of first appearance. A consolidated entry whose base was never
// registered fails with entity.ErrMissingBaseEntity. Finalize does not change the
// accumulated state.
func (a *Accumulator) Finalize(ctx context.Context, kind entity.Kind) ([]Consolidated, error) {
	if kind == entity.KindNation {
		n := a.nation.Nation()
		return []Consolidated{{Kind: kind, SourceName: n.Name(), Entity: n}}, nil
	}
	table, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("accumulator: unsupported kind %q", kind)
	}
	c, ok := a.kinds[kind]
	if !ok {
		return nil, nil
	}

	out := make([]Consolidated, 0, len(c.order))
	for _, key := range c.order {
		cur := c.entries[key]
		if cur.standalone {
			out = append(out, Consolidated{
				Kind:       kind,
				SourceName: key,
				Entity:     cur.entity.Clone(),
				Variants:   append([]entity.Variant(nil), cur.variants...),
			})
			continue
		}

		base, ok := c.bases[key]
		if !ok {
			return nil, &entity.EntityError{Kind: kind, Name: key, Err: entity.ErrMissingBaseEntity}
		}

		subs := []uniques.Substitution{{Old: base.Name(), New: cur.entity.Name()}}
		folded, err := a.merge(ctx, table, cur, base, subs)
		if err != nil {
			return nil, &entity.EntityError{Kind: kind, Name: key, Err: err}
		}
		result := folded.entity
		if table.Variants {
			if sound, ok := base[FieldAttackSound]; ok {
				result = result.With(FieldAttackSound, sound)
			}
		}

		out = append(out, Consolidated{
			Kind:       kind,
			SourceName: key,
			Entity:     result,
			Variants:   folded.variants,
			Base:       base.Clone(),
		})
	}
	return out, nil
}

// Base returns a registered base entity.
func (a *Accumulator) Base(kind entity.Kind, name string) (entity.Entity, bool) {
	c, ok := a.kinds[kind]
	if !ok {
		return nil, false
	}
	e, ok := c.bases[name]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Len returns the number of consolidated entries of a kind.
func (a *Accumulator) Len(kind entity.Kind) int {
	if kind == entity.KindNation {
		return 1
	}
	if c, ok := a.kinds[kind]; ok {
		return len(c.order)
	}
	return 0
}

func (a *Accumulator) collection(kind entity.Kind) *collection {
	c, ok := a.kinds[kind]
	if !ok {
		c = &collection{
			bases:   make(map[string]entity.Entity),
			entries: make(map[string]*entry),
		}
		a.kinds[kind] = c
	}
	return c
}

// mergeUniques combines the ability lists of two entities. An override without a
// uniques field leaves the result unchanged.
func mergeUniques(ctx context.Context, m *uniques.Merger, result, override entity.Entity, subs []uniques.Substitution) (entity.Entity, error) {
	o, ok, err := override.Strings(entity.FieldUniques)
	if err != nil {
		return nil, err
	}
	if !ok {
		return result, nil
	}
	b, _, err := result.Strings(entity.FieldUniques)
	if err != nil {
		return nil, err
	}

	merged, err := m.Merge(ctx, b, o, subs)
	if err != nil {
		return nil, err
	}
	if len(merged) == 0 {
		return result.Without(entity.FieldUniques), nil
	}
	return result.With(entity.FieldUniques, merged), nil
}
