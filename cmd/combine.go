package cmd

import (
	"fmt"
	"os"
	"time"

	"ruleset-combiner/core/database"
	"ruleset-combiner/core/logger"
	"ruleset-combiner/feature/ruleset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine every source set into one ruleset",
	Long: `Reads every mod below the input directory, merges the entities that replace the
same base entity, and writes the combined ruleset and its asset manifest to the output
directory. Unknown abilities are decided by the configured resolver.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		combine := cfg.Combine
		flags := cmd.Flags()
		if flags.Changed("input") {
			combine.InputDir, _ = flags.GetString("input")
		}
		if flags.Changed("output") {
			combine.OutputDir, _ = flags.GetString("output")
		}
		if flags.Changed("resolver") {
			combine.Resolver, _ = flags.GetString("resolver")
		}
		if flags.Changed("tech-set") {
			combine.TechSet, _ = flags.GetString("tech-set")
		}
		if flags.Changed("sources") {
			combine.IncludeSources, _ = flags.GetBool("sources")
		}
		record, _ := flags.GetBool("record")

		opts, res, err := loadInputs(combine, logg, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}

		sets, err := ruleset.NewDirReader(combine.InputDir, logg).Read(ctx)
		if err != nil {
			return err
		}
		if len(sets) == 0 {
			return fmt.Errorf("no source sets found in %s", combine.InputDir)
		}

		rs, err := ruleset.NewAssembler(combine, opts, logg).Assemble(ctx, sets)
		// Answers given before a failure are still worth keeping.
		if saveErr := res.Save(combine.DecisionsFile); saveErr != nil {
			logg.Warn("Failed to save ability decisions", zap.Error(saveErr))
		}
		if err != nil {
			return err
		}

		if err := ruleset.WriteRuleset(ctx, ruleset.NewDirSink(combine.OutputDir), rs, logg); err != nil {
			return err
		}

		if record {
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed, manifest not recorded", zap.Error(err))
			} else {
				catalog := ruleset.NewCatalog(db, logg)
				if err := catalog.Migrate(ctx); err != nil {
					return err
				}
				if err := catalog.Save(ctx, rs.RunID, rs.Manifest); err != nil {
					return err
				}
			}
		}

		logger.WithRunID(logg, rs.RunID).Info("Combined ruleset",
			zap.String("output", combine.OutputDir),
			zap.Int("source_sets", len(sets)),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	},
}

func init() {
	combineCmd.Flags().String("input", "", "Directory holding one folder per source set")
	combineCmd.Flags().String("output", "", "Directory receiving the combined ruleset")
	combineCmd.Flags().String("resolver", "", "Unknown ability resolver: prompt, reject, accept or lookup")
	combineCmd.Flags().String("tech-set", "", "Source set whose tech tree orders required techs")
	combineCmd.Flags().Bool("sources", true, "Copy source entries next to the consolidated ones")
	combineCmd.Flags().Bool("record", false, "Record the manifest in the database")
	RootCmd.AddCommand(combineCmd)
}
