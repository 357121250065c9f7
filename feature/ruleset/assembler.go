package ruleset

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"ruleset-combiner/core/accumulator"
	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/techorder"
	"ruleset-combiner/core/uniques"
	"ruleset-combiner/core/variant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrTechTreeNotFound is returned when the configured tech set or its tech file is missing.
var ErrTechTreeNotFound = errors.New("tech tree not found")

// GlobalUniquesName is the name of the combined global uniques record.
const GlobalUniquesName = "Global uniques"

// ManifestRecord links one output record to the source entity its assets come from.
type ManifestRecord struct {
	Kind       entity.Kind `json:"kind"`
	SourceName string      `json:"sourceName"`
	Name       string      `json:"name"`
}

// Manifest lists every consolidated or exploded record in output order.
type Manifest []ManifestRecord

// Ruleset is the result of one combine run.
type Ruleset struct {
	RunID        string
	SourceSets   []string
	Buildings    []entity.Entity
	Improvements []entity.Entity
	Units        []entity.Entity
	Nations      []entity.Entity
	// GlobalUniques is the single record of GlobalUniques.json.
	GlobalUniques entity.Entity
	// Sources holds, per file name, the concatenated entries of every source set.
	// It is empty unless IncludeSources is set.
	Sources  map[string][]any
	Manifest Manifest
}

// Records returns the consolidated records of a kind.
func (r *Ruleset) Records(kind entity.Kind) []entity.Entity {
	switch kind {
	case entity.KindBuilding:
		return r.Buildings
	case entity.KindImprovement:
		return r.Improvements
	case entity.KindUnit:
		return r.Units
	case entity.KindNation:
		return r.Nations
	default:
		return nil
	}
}

// Find returns the consolidated record of a kind by name.
func (r *Ruleset) Find(kind entity.Kind, name string) (entity.Entity, bool) {
	for _, e := range r.Records(kind) {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// AssemblerOptions carry the loaded inputs of an Assembler.
type AssemblerOptions struct {
	Known    uniques.List
	Unwanted uniques.List
	Resolver uniques.Resolver
	// Nation is the combined nation template. Defaults to DefaultNation(cfg.Nation).
	Nation entity.Entity
}

// Assembler combines source sets into a Ruleset.
type Assembler struct {
	cfg    Config
	opts   AssemblerOptions
	logger *zap.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(cfg Config, opts AssemblerOptions, logger *zap.Logger) *Assembler {
	if opts.Nation == nil {
		opts.Nation = DefaultNation(cfg.Nation)
	}
	return &Assembler{cfg: cfg, opts: opts, logger: logger}
}

// Assemble runs the merge over every source set. Sets are processed in name order so
// that the result does not depend on the order they were read in.
func (a *Assembler) Assemble(ctx context.Context, sets []SourceSet) (*Ruleset, error) {
	sorted := append([]SourceSet(nil), sets...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	ordering, err := a.ordering(sorted)
	if err != nil {
		return nil, err
	}

	merger := uniques.NewMerger(a.opts.Known, a.opts.Unwanted, a.opts.Resolver)
	acc := accumulator.New(ordering, merger, accumulator.Options{
		Owner:  a.opts.Nation.Name(),
		Nation: a.opts.Nation,
	})

	rs := &Ruleset{RunID: uuid.NewString()}
	for _, set := range sorted {
		rs.SourceSets = append(rs.SourceSets, set.Name)
		for _, kind := range entity.Kinds {
			list, err := set.Entities(kind)
			if err != nil {
				return nil, err
			}
			for _, e := range list {
				if err := acc.Add(ctx, kind, e); err != nil {
					return nil, fmt.Errorf("source set %s: %w", set.Name, err)
				}
			}
			if len(list) > 0 {
				a.logger.Debug("Accumulated entities",
					zap.String("source_set", set.Name),
					zap.String("kind", string(kind)),
					zap.Int("count", len(list)),
				)
			}
		}
	}

	for _, kind := range entity.Kinds {
		if err := a.finalize(ctx, acc, kind, rs); err != nil {
			return nil, err
		}
	}

	if rs.GlobalUniques, err = globalUniques(ctx, merger, sorted); err != nil {
		return nil, err
	}
	if a.cfg.IncludeSources {
		if rs.Sources, err = collectSources(sorted); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Assembled ruleset",
		zap.String("run_id", rs.RunID),
		zap.Int("source_sets", len(sorted)),
		zap.Int("buildings", len(rs.Buildings)),
		zap.Int("improvements", len(rs.Improvements)),
		zap.Int("units", len(rs.Units)),
	)
	return rs, nil
}

func (a *Assembler) finalize(ctx context.Context, acc *accumulator.Accumulator, kind entity.Kind, rs *Ruleset) error {
	results, err := acc.Finalize(ctx, kind)
	if err != nil {
		return err
	}

	for _, c := range results {
		switch kind {
		case entity.KindNation:
			rs.Nations = append(rs.Nations, c.Entity)
		case entity.KindUnit:
			records, err := variant.Explode(c.Entity, c.Variants, c.Base, variant.Options{})
			if err != nil {
				return err
			}
			for _, r := range records {
				rs.Units = append(rs.Units, r.Entity)
				rs.Manifest = append(rs.Manifest, ManifestRecord{Kind: kind, SourceName: r.SourceName, Name: r.Name})
			}
		case entity.KindBuilding:
			rs.Buildings = append(rs.Buildings, c.Entity)
			rs.Manifest = append(rs.Manifest, ManifestRecord{Kind: kind, SourceName: c.SourceName, Name: c.Entity.Name()})
		case entity.KindImprovement:
			rs.Improvements = append(rs.Improvements, c.Entity)
			rs.Manifest = append(rs.Manifest, ManifestRecord{Kind: kind, SourceName: c.SourceName, Name: c.Entity.Name()})
		}
	}
	return nil
}

// ordering builds the tech ordering from the configured tech set, or from the first
// set carrying the tech file when no set is configured.
func (a *Assembler) ordering(sets []SourceSet) (*techorder.Ordering, error) {
	for _, set := range sets {
		if a.cfg.TechSet != "" && set.Name != a.cfg.TechSet {
			continue
		}
		data, ok := set.Files[a.cfg.TechFile]
		if !ok {
			if a.cfg.TechSet == "" {
				continue
			}
			break
		}
		tiers, err := techorder.FromTechTree(data)
		if err != nil {
			return nil, fmt.Errorf("source set %s: %w", set.Name, err)
		}
		ordering := techorder.Build(tiers)
		a.logger.Debug("Built tech ordering",
			zap.String("source_set", set.Name),
			zap.Int("tiers", len(tiers)),
			zap.Int("techs", ordering.Len()),
		)
		return ordering, nil
	}
	return nil, fmt.Errorf("%w: %s in source set %q", ErrTechTreeNotFound, a.cfg.TechFile, a.cfg.TechSet)
}

// globalUniques filters and concatenates the GlobalUniques.json of every set.
func globalUniques(ctx context.Context, merger *uniques.Merger, sets []SourceSet) (entity.Entity, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, set := range sets {
		obj, ok, err := set.Object(globalUniquesFile)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		list, _, err := obj.Strings(entity.FieldUniques)
		if err != nil {
			return nil, fmt.Errorf("source set %s: %w", set.Name, err)
		}
		kept, err := merger.Filter(ctx, list)
		if err != nil {
			return nil, err
		}
		for _, s := range kept {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			all = append(all, s)
		}
	}

	out := entity.Entity{entity.FieldName: GlobalUniquesName}
	if len(all) > 0 {
		out[entity.FieldUniques] = all
	}
	return out, nil
}

// collectSources concatenates every array file of every set, in set order.
func collectSources(sets []SourceSet) (map[string][]any, error) {
	out := make(map[string][]any)
	for _, set := range sets {
		for _, name := range set.FileNames() {
			if name == globalUniquesFile {
				continue
			}
			list, _, err := set.List(name)
			if err != nil {
				return nil, err
			}
			out[name] = append(out[name], list...)
		}
	}
	return out, nil
}
