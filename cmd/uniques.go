package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"ruleset-combiner/core/uniques"
	"ruleset-combiner/feature/ruleset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// uniquesCmd represents the uniques command
var uniquesCmd = &cobra.Command{
	Use:   "uniques",
	Short: "Inspect the abilities used by the source sets",
}

// unknownAbility is one ability missing from the known list.
type unknownAbility struct {
	Text       string `json:"text"`
	Suggestion string `json:"suggestion,omitempty"`
}

// uniquesCheckCmd represents the uniques check command
var uniquesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "List abilities missing from the known abilities list",
	Long: `Runs a full combine without writing anything and lists every ability that the
known abilities list does not contain, with the closest known ability when one is near.
Add the listed texts to the decisions file to answer them ahead of a combine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		combine := cfg.Combine
		combine.Resolver = ruleset.ResolverReject
		combine.DecisionsFile = ""
		opts, _, err := loadInputs(combine, logg, nil, nil)
		if err != nil {
			return err
		}
		recorder := uniques.NewRecorder()
		opts.Resolver = recorder

		sets, err := ruleset.NewDirReader(combine.InputDir, logg).Read(ctx)
		if err != nil {
			return err
		}
		if _, err := ruleset.NewAssembler(combine, opts, logg).Assemble(ctx, sets); err != nil {
			return err
		}

		var unknown []unknownAbility
		for _, text := range recorder.Texts() {
			hint, _ := opts.Known.Suggest(text)
			unknown = append(unknown, unknownAbility{Text: text, Suggestion: hint})
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(unknown)
		}

		logg.Info("Checked abilities", zap.Int("unknown", len(unknown)))
		for _, u := range unknown {
			if u.Suggestion != "" {
				fmt.Printf("%q (closest: %q)\n", u.Text, u.Suggestion)
				continue
			}
			fmt.Printf("%q\n", u.Text)
		}
		return nil
	},
}

func init() {
	uniquesCheckCmd.Flags().Bool("json", false, "Output the unknown abilities as JSON")
	uniquesCmd.AddCommand(uniquesCheckCmd)
	RootCmd.AddCommand(uniquesCmd)
}
