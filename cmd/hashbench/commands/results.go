package commands

import (
	"fmt"

	"hashbench/pkg/results"

	"github.com/spf13/cobra"
)

var (
	resultsLimit   int
	resultsCommand string
)

var resultsCmd = &cobra.Command{
	Use:         "results",
	Short:       "Show recorded benchmark runs",
	Long:        `List runs recorded with --record, newest first.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{needsResults: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if HB == nil {
			return fmt.Errorf("app not initialized")
		}
		repo, err := HB.RequireResults()
		if err != nil {
			return err
		}

		runs, err := repo.FindRunsByCommand(cmd.Context(), resultsCommand, resultsLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		return results.PrintRuns(cmd.OutOrStdout(), runs)
	},
}

func init() {
	resultsCmd.Flags().IntVarP(&resultsLimit, "limit", "n", results.DefaultLimit, "Maximum number of runs to show")
	resultsCmd.Flags().StringVar(&resultsCommand, "command", "", "Only show runs of this command (genHashes | includesTest)")
	rootCmd.AddCommand(resultsCmd)
}
