package cmd

import (
	"fmt"
	"time"

	"ruleset-combiner/core/storage"
	"ruleset-combiner/feature/ruleset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the combined ruleset to object storage",
	Long: `Uploads every file of the output directory (jsons/, Images/ and the manifest) to the
configured bucket below the bucket prefix, creating the bucket when missing, then checks
that the published mod has its required folders. With --prune, objects below the prefix
that the output no longer holds are listed, and removed when --yes is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()
		fix, _ := cmd.Flags().GetBool("fix")
		prune, _ := cmd.Flags().GetBool("prune")
		confirmed, _ := cmd.Flags().GetBool("yes")

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		created, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			return err
		}
		if created {
			logg.Info("Created bucket", zap.String("bucket", cfg.Storage.Bucket))
		}

		sink := ruleset.NewBucketSink(client, cfg.Storage.Bucket, cfg.Combine.BucketPrefix)
		published, err := ruleset.PublishDir(ctx, sink, cfg.Combine.OutputDir, logg)
		if err != nil {
			return fmt.Errorf("publishing %s: %w", cfg.Combine.OutputDir, err)
		}

		if prune {
			plan, err := ruleset.PlanPrune(ctx, client, cfg.Storage.Bucket, cfg.Combine.BucketPrefix, published)
			if err != nil {
				return err
			}
			removed, err := ruleset.ApplyPrune(ctx, client, cfg.Storage.Bucket, plan, ruleset.PruneOptions{Confirmed: confirmed}, logg)
			if err != nil {
				return err
			}
			if !confirmed && len(plan.Actions) > 0 {
				logg.Warn("Stale objects found, rerun with --yes to remove them", zap.Int("stale", len(plan.Actions)))
			}
			logg.Info("Pruned stale objects", zap.Int("removed", removed), zap.Int("kept", plan.Kept))
		}

		missing, err := ruleset.CheckLayout(ctx, client, cfg.Storage.Bucket, cfg.Combine.BucketPrefix)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			if !fix {
				logg.Warn("Published ruleset is missing folders, rerun with --fix", zap.Strings("missing", missing))
			} else if err := ruleset.FixLayout(ctx, client, cfg.Storage.Bucket, cfg.Combine.BucketPrefix, logg, missing); err != nil {
				return err
			}
		}

		logg.Info("Published ruleset",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("prefix", cfg.Combine.BucketPrefix),
			zap.Int("files", len(published)),
			zap.Duration("took", time.Since(start)),
		)
		return nil
	},
}

func init() {
	publishCmd.Flags().Bool("fix", false, "Create missing required folders")
	publishCmd.Flags().Bool("prune", false, "Plan the removal of published objects missing from the output")
	publishCmd.Flags().Bool("yes", false, "Confirm the removals planned by --prune")
	RootCmd.AddCommand(publishCmd)
}
