package commands

import (
	"context"
	"fmt"
	"io"

	"hashbench/pkg/bench"
	"hashbench/pkg/corpus"
	"hashbench/pkg/results"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cmdIncludesTest = "includesTest"

var includesTestCmd = &cobra.Command{
	Use:   cmdIncludesTest,
	Short: "Time linear lookups against a generated corpus",
	Long: `Load hundredThousandHashes.json, parse it, and time four linear membership
checks: two digests known to be present and two that cannot be present.
Any unexpected result aborts the benchmark.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if HB == nil {
			return fmt.Errorf("app not initialized")
		}
		return runIncludesTest(cmd.Context(), cmd.OutOrStdout())
	},
}

func runIncludesTest(ctx context.Context, out io.Writer) error {
	format, err := corpus.ParseFormat(viper.GetString("corpus.format"))
	if err != nil {
		return err
	}

	report, err := bench.NewRunner(HB.Store).Run(ctx, bench.Options{
		Name:   viper.GetString("corpus.name"),
		Format: format,
		Rounds: viper.GetInt("bench.rounds"),
	})
	if err != nil {
		return err
	}

	measurements, err := report.AllMeasurements()
	if err != nil {
		return err
	}
	if err := bench.WriteReport(out, measurements); err != nil {
		return err
	}

	if HB.Results == nil {
		return nil
	}
	run, err := results.NewRun(cmdIncludesTest, measurements)
	if err != nil {
		return err
	}
	run.Corpus = report.Corpus
	run.Format = report.Format.String()
	run.Size = report.Size
	run.Rounds = viper.GetInt("bench.rounds")
	return HB.Results.RecordRun(ctx, run)
}

func init() {
	flags := includesTestCmd.Flags()
	flags.Int("rounds", 1, "Repeat each lookup N times and report mean/p50/p95")
	bindFlag(flags, "bench.rounds", "rounds")

	rootCmd.AddCommand(includesTestCmd)
}
