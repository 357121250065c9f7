package ruleset

import (
	"context"
	"sync"
	"time"

	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Builder produces a fresh ruleset.
type Builder func(ctx context.Context) (*Ruleset, error)

// NewBuilder reads every source set and assembles them.
func NewBuilder(cfg Config, reader SourceReader, opts AssemblerOptions, logger *zap.Logger) Builder {
	assembler := NewAssembler(cfg, opts, logger)
	return func(ctx context.Context) (*Ruleset, error) {
		sets, err := reader.Read(ctx)
		if err != nil {
			return nil, err
		}
		return assembler.Assemble(ctx, sets)
	}
}

// Summary describes the cached ruleset.
type Summary struct {
	RunID      string         `json:"runId"`
	BuiltAt    time.Time      `json:"builtAt"`
	SourceSets []string       `json:"sourceSets"`
	Counts     map[string]int `json:"counts"`
}

// Service caches the latest combined ruleset and rebuilds it on demand.
// Concurrent rebuild requests share one build.
type Service struct {
	build   Builder
	catalog *Catalog
	logger  *zap.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	current *Ruleset
	builtAt time.Time
}

// NewService creates a Service. catalog may be nil.
func NewService(build Builder, catalog *Catalog, logger *zap.Logger) *Service {
	return &Service{build: build, catalog: catalog, logger: logger}
}

// Rebuild builds a new ruleset and replaces the cached one. Concurrent callers share one
// build, which is not cancelled when the caller that started it goes away.
func (s *Service) Rebuild(ctx context.Context) (*Ruleset, error) {
	buildCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do("rebuild", func() (any, error) {
		start := time.Now()
		rs, err := s.build(buildCtx)
		if err != nil {
			return nil, err
		}
		runLogger := logger.WithRunID(s.logger, rs.RunID)
		if s.catalog != nil {
			if err := s.catalog.Save(buildCtx, rs.RunID, rs.Manifest); err != nil {
				runLogger.Warn("Failed to save manifest", zap.Error(err))
			}
		}

		s.mu.Lock()
		s.current = rs
		s.builtAt = time.Now()
		s.mu.Unlock()

		runLogger.Info("Rebuilt ruleset", zap.Duration("took", time.Since(start)))
		return rs, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight rebuild")
	}
	return v.(*Ruleset), nil
}

// Current returns the cached ruleset, building it on first use.
func (s *Service) Current(ctx context.Context) (*Ruleset, error) {
	s.mu.RLock()
	rs := s.current
	s.mu.RUnlock()
	if rs != nil {
		return rs, nil
	}
	return s.Rebuild(ctx)
}

// Summary describes the current ruleset.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	rs, err := s.Current(ctx)
	if err != nil {
		return Summary{}, err
	}
	s.mu.RLock()
	builtAt := s.builtAt
	s.mu.RUnlock()

	counts := make(map[string]int, len(entity.Kinds))
	for _, kind := range entity.Kinds {
		counts[string(kind)] = len(rs.Records(kind))
	}
	return Summary{
		RunID:      rs.RunID,
		BuiltAt:    builtAt,
		SourceSets: rs.SourceSets,
		Counts:     counts,
	}, nil
}
