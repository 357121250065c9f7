package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"ruleset-combiner/core/config"
	"ruleset-combiner/core/logger"
	"ruleset-combiner/core/uniques"
	"ruleset-combiner/feature/ruleset"

	"go.uber.org/zap"
)

// bootstrap loads the configuration and builds the logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// loadInputs reads the ability lists and the nation template and builds the resolver
// for unknown abilities. Interactive prompts use in and out.
func loadInputs(cfg ruleset.Config, logg *zap.Logger, in io.Reader, out io.Writer) (ruleset.AssemblerOptions, *ruleset.Resolution, error) {
	var opts ruleset.AssemblerOptions

	known, err := uniques.LoadList(cfg.KnownUniques)
	if err != nil {
		return opts, nil, fmt.Errorf("failed to load known abilities: %w", err)
	}
	unwanted, err := uniques.LoadList(cfg.UnwantedUniques)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		logg.Warn("No unwanted abilities list, every ability accumulates", zap.String("path", cfg.UnwantedUniques))
	default:
		return opts, nil, fmt.Errorf("failed to load unwanted abilities: %w", err)
	}

	nation, err := ruleset.LoadNationTemplate(cfg.NationTemplate, cfg.Nation)
	if err != nil {
		return opts, nil, err
	}

	res, err := ruleset.NewResolver(cfg, known, in, out)
	if err != nil {
		return opts, nil, err
	}

	logg.Debug("Loaded abilities",
		zap.Int("known", len(known)),
		zap.Int("unwanted", len(unwanted)),
		zap.String("resolver", cfg.Resolver),
	)
	opts = ruleset.AssemblerOptions{
		Known:    known,
		Unwanted: unwanted,
		Resolver: res.Resolver,
		Nation:   nation,
	}
	return opts, res, nil
}
