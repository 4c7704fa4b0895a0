package commands

import (
	"errors"
	"fmt"
	"os"

	"hashbench/pkg/app"
	"hashbench/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// ErrNoCommand: 没有给出命令参数
	ErrNoCommand = errors.New("no command (expected genHashes or includesTest)")
	// ErrUnknownCommand 只在 --strict 下返回
	ErrUnknownCommand = errors.New("unknown command")
)

// needsResults 标记需要结果库的子命令
const needsResults = "needs-results"

// flagBinding 记录一个 viper key 与 flag 的绑定
type flagBinding struct {
	key  string
	flag *pflag.Flag
}

var (
	cfgFile  string
	bindings []flagBinding
	// 全局应用实例，供子命令使用
	HB *app.App
)

var rootCmd = &cobra.Command{
	Use:   "hashbench <command>",
	Short: "hashbench: SHA-512 generation and linear lookup micro-benchmarks",
	Long: `hashbench generates a corpus of random 512-bit digests (genHashes) and
times linear membership checks against a stored corpus (includesTest).`,
	// 未知的参数交给 RunE 处理，而不是让 cobra 打印 usage
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 根命令本身不需要存储
		if !cmd.HasParent() {
			return nil
		}
		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "🔧 Using config file:", f)
		}
		var opts []app.Option
		if cmd.Annotations[needsResults] == "true" {
			opts = append(opts, app.WithResults())
		}

		var err error
		HB, err = app.NewApp(cmd.Context(), opts...)
		if err != nil {
			return fmt.Errorf("failed to initialize hashbench: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return ErrNoCommand
		}

		// 只打印一行诊断，默认仍然正常退出
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown command %q\n", args[0])
		if viper.GetBool("cli.strict") {
			return ErrUnknownCommand
		}
		return nil
	},
}

// Execute 是入口
func Execute() error {
	err := rootCmd.Execute()
	if HB != nil {
		if cerr := HB.Close(); cerr != nil && err == nil {
			err = cerr
		}
		HB = nil
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.hashbench/config.yaml)")

	// 既可以写在 yaml 里，也可以用 flag 覆盖
	flags.String("storage-type", "disk", "Storage backend: disk | s3")
	flags.String("storage-path", ".", "Directory holding the corpus (disk storage)")
	flags.String("file", "hundredThousandHashes.json", "Corpus name inside the storage backend")
	flags.String("format", "json", "Corpus format: json | cbor")
	flags.Bool("record", false, "Record measurements in the results database")
	flags.Bool("strict", false, "Exit with status 2 on an unknown command")

	bindFlag(flags, "storage.type", "storage-type")
	bindFlag(flags, "storage.path", "storage-path")
	bindFlag(flags, "corpus.name", "file")
	bindFlag(flags, "corpus.format", "format")
	bindFlag(flags, "results.enabled", "record")
	bindFlag(flags, "cli.strict", "strict")
}

func bindFlag(flags *pflag.FlagSet, key, name string) {
	b := flagBinding{key: key, flag: flags.Lookup(name)}
	if err := viper.BindPFlag(b.key, b.flag); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to bind flag:", err)
		os.Exit(1)
	}
	bindings = append(bindings, b)
}

// initConfig 读取配置文件和环境变量
// 每次 Execute 都从干净的 viper 开始，上一次找到的配置文件不会残留
func initConfig() {
	viper.Reset()
	for _, b := range bindings {
		if err := viper.BindPFlag(b.key, b.flag); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to bind flag:", err)
			os.Exit(1)
		}
	}

	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}
}
