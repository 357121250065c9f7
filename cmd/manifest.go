package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"ruleset-combiner/core/database"
	"ruleset-combiner/feature/ruleset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Query the manifests recorded in the database",
}

// manifestShowCmd represents the manifest show command
var manifestShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print a recorded manifest, the latest one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		catalog, logg, err := openCatalog()
		if err != nil {
			return err
		}
		defer logg.Sync()

		var runID string
		if len(args) == 1 {
			runID = args[0]
		} else if runID, err = catalog.LatestRunID(ctx); err != nil {
			return err
		}

		m, err := catalog.Run(ctx, runID)
		if err != nil {
			return err
		}
		logg.Info("Loaded manifest", zap.String("run_id", runID), zap.Int("records", len(m)))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	},
}

// manifestVerifyCmd represents the manifest verify command
var manifestVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the manifest table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		migrate, _ := cmd.Flags().GetBool("migrate")

		catalog, logg, err := openCatalog()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if migrate {
			if err := catalog.Migrate(ctx); err != nil {
				return err
			}
		}
		missing, err := catalog.Verify(ctx)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return fmt.Errorf("manifest table is missing columns %v, rerun with --migrate", missing)
		}
		logg.Info("Manifest table is up to date")
		return nil
	},
}

func openCatalog() (*ruleset.Catalog, *zap.Logger, error) {
	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection required: %w", err)
	}
	return ruleset.NewCatalog(db, logg), logg, nil
}

func init() {
	manifestVerifyCmd.Flags().Bool("migrate", false, "Create or update the manifest table first")
	manifestCmd.AddCommand(manifestShowCmd, manifestVerifyCmd)
	RootCmd.AddCommand(manifestCmd)
}
