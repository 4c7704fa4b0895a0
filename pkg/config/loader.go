package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix: HASHBENCH_STORAGE_TYPE 覆盖 storage.type
const EnvPrefix = "HASHBENCH"

// storage.cache.redis_url -> HASHBENCH_STORAGE_CACHE_REDIS_URL
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
// 不打印任何内容：根命令的诊断输出必须只有一行，由调用方决定是否提示配置文件
func Load(cfgFile string) error {
	// 1. 设置默认值 (Defaults)
	setDefaults()

	// 2. 配置搜索路径
	if cfgFile != "" {
		// 用户显式指定的文件必须存在
		if _, err := os.Stat(cfgFile); err != nil {
			return fmt.Errorf("fatal error config file: %w", err)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(".hashbench")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".hashbench"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config") // 找 config.yaml
	}

	// 3. 读取环境变量 (HASHBENCH_STORAGE_TYPE 等)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// 4. 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		// 没有配置文件是正常情况 (默认值 + 环境变量)
		// 但如果是配置文件格式错，那就是错
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setDefaults() {
	// 语料
	viper.SetDefault("corpus.name", "hundredThousandHashes.json")
	viper.SetDefault("corpus.format", "json")

	// 生成器
	viper.SetDefault("generator.count", 100000)
	viper.SetDefault("generator.algorithm", "sha512")
	viper.SetDefault("generator.seed", 0)

	// 基准
	viper.SetDefault("bench.rounds", 1)

	// 存储默认值：直接读写当前工作目录
	viper.SetDefault("storage.type", "disk")
	viper.SetDefault("storage.path", ".")
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.cache.redis_url", "")
	viper.SetDefault("storage.cache.ttl", "24h")

	// 结果库 (默认关闭)
	viper.SetDefault("results.enabled", false)
	viper.SetDefault("results.driver", "sqlite")
	viper.SetDefault("results.path", ".hashbench/results.db")
	viper.SetDefault("results.postgres.host", "localhost")
	viper.SetDefault("results.postgres.port", 5432)
	viper.SetDefault("results.postgres.sslmode", "disable")

	viper.SetDefault("cli.strict", false)
}
