package commands

import (
	"context"
	"fmt"
	"io"

	"hashbench/pkg/bench"
	"hashbench/pkg/core"
	"hashbench/pkg/corpus"
	"hashbench/pkg/results"
	"hashbench/pkg/timing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cmdGenHashes 也是结果库里的 command 字段
const cmdGenHashes = "genHashes"

var saveCorpus bool

var genHashesCmd = &cobra.Command{
	Use:   cmdGenHashes,
	Short: "Generate random 512-bit digests and print them as a JSON array",
	Long: `Hash 100000 random numbers with SHA-512 and print the digests as one JSON
array on stdout. Redirect stdout to create the corpus used by includesTest:

  hashbench genHashes > hundredThousandHashes.json

The generation time is written to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if HB == nil {
			return fmt.Errorf("app not initialized")
		}
		return runGenHashes(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func runGenHashes(ctx context.Context, out, errOut io.Writer) error {
	algo, err := core.ParseAlgorithm(viper.GetString("generator.algorithm"))
	if err != nil {
		return err
	}
	format, err := corpus.ParseFormat(viper.GetString("corpus.format"))
	if err != nil {
		return err
	}
	gen, err := core.NewGenerator(viper.GetInt("generator.count"), algo, viper.GetUint64("generator.seed"))
	if err != nil {
		return err
	}

	// 1. 生成 (计时)
	sample, err := timing.ProfileErr(gen.Generate)
	if err != nil {
		return fmt.Errorf("failed to generate hashes: %w", err)
	}
	digests := sample.Result

	// 2. 序列化并输出到 stdout
	data, err := corpus.Encode(digests, format)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	if format == corpus.JSON {
		fmt.Fprintln(out)
	}

	// 3. 耗时写 stderr，保证 stdout 可以直接重定向为语料文件
	m := timing.Measure(fmt.Sprintf("Time to generate %d hashes", len(digests)), sample.Elapsed)
	if err := bench.WriteMeasurement(errOut, m); err != nil {
		return err
	}

	// 4. 可选：写入存储
	name := viper.GetString("corpus.name")
	if saveCorpus {
		if err := HB.Store.Put(ctx, name, data); err != nil {
			return fmt.Errorf("failed to save corpus %s: %w", name, err)
		}
		fmt.Fprintf(errOut, "Saved %d hashes to %s\n", len(digests), name)
	}

	if HB.Results == nil {
		return nil
	}
	run, err := results.NewRun(cmdGenHashes, []timing.Measurement{m})
	if err != nil {
		return err
	}
	run.Corpus = name
	run.Format = format.String()
	run.Algorithm = algo.String()
	run.Size = len(digests)
	run.Rounds = 1
	return HB.Results.RecordRun(ctx, run)
}

func init() {
	flags := genHashesCmd.Flags()
	flags.Int("count", core.DefaultCount, "Number of digests to generate")
	flags.String("algo", string(core.DefaultAlgorithm), "Hash algorithm: sha512 | sha3-512 | blake2b-512")
	flags.Uint64("seed", 0, "Seed for a reproducible corpus (0 = random)")
	flags.BoolVar(&saveCorpus, "save", false, "Also write the corpus into the storage backend")

	bindFlag(flags, "generator.count", "count")
	bindFlag(flags, "generator.algorithm", "algo")
	bindFlag(flags, "generator.seed", "seed")

	rootCmd.AddCommand(genHashesCmd)
}
