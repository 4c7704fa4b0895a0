// pkg/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"

	"hashbench/pkg/results"
	"hashbench/pkg/storage"
	"hashbench/pkg/storage/cache"
	"hashbench/pkg/storage/disk"
	"hashbench/pkg/storage/s3"

	"github.com/spf13/viper"
)

// ErrResultsDisabled 表示没有开启结果库
var ErrResultsDisabled = errors.New("results store is disabled (use --record or set results.enabled)")

// App 是整个应用程序的依赖容器 (Dependency Container)
type App struct {
	Store storage.Store
	// Results 只有在 results.enabled 时才会初始化
	Results *results.Repository

	closers []func() error
}

type options struct {
	forceResults bool
}

// Option 调整 NewApp 的行为
type Option func(*options)

// WithResults 无视 results.enabled，总是打开结果库
func WithResults() Option {
	return func(o *options) { o.forceResults = true }
}

// NewApp 是工厂函数，按 Viper 配置组装存储与结果库
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store, closeStore, err := initStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	a := &App{Store: store}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}

	if o.forceResults || viper.GetBool("results.enabled") {
		db, err := results.NewDB(ctx, resultsConfig())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to init results store: %w", err)
		}
		a.Results = results.NewRepository(db)
		a.closers = append(a.closers, db.Close)
	}

	return a, nil
}

// RequireResults 在需要结果库的命令里调用
func (a *App) RequireResults() (*results.Repository, error) {
	if a.Results == nil {
		return nil, ErrResultsDisabled
	}
	return a.Results, nil
}

// Close 释放所有外部连接 (Redis / DB)
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// initStore 根据 storage.type 选择底层存储，再按需套上 Redis 缓存
func initStore(ctx context.Context) (storage.Store, func() error, error) {
	var store storage.Store

	switch storeType := viper.GetString("storage.type"); storeType {
	case "", "disk":
		d, err := disk.NewAdapter(viper.GetString("storage.path"))
		if err != nil {
			return nil, nil, err
		}
		store = d
	case "s3":
		cfg := s3.Config{
			Endpoint:        viper.GetString("storage.s3.endpoint"),
			Region:          viper.GetString("storage.s3.region"),
			Bucket:          viper.GetString("storage.s3.bucket"),
			Prefix:          viper.GetString("storage.s3.prefix"),
			AccessKeyID:     viper.GetString("storage.s3.access_key"),
			SecretAccessKey: viper.GetString("storage.s3.secret_key"),
		}
		if cfg.Bucket == "" {
			return nil, nil, fmt.Errorf("storage.s3.bucket is required for s3 storage")
		}
		a, err := s3.NewAdapter(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store = a
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", storeType)
	}

	redisURL := viper.GetString("storage.cache.redis_url")
	if redisURL == "" {
		return store, nil, nil
	}

	cached, err := cache.NewCachedStore(store, cache.Config{
		RedisURL: redisURL,
		TTL:      viper.GetDuration("storage.cache.ttl"),
	})
	if err != nil {
		return nil, nil, err
	}
	return cached, cached.Close, nil
}

func resultsConfig() results.Config {
	return results.Config{
		Driver:   viper.GetString("results.driver"),
		Path:     viper.GetString("results.path"),
		Host:     viper.GetString("results.postgres.host"),
		Port:     viper.GetInt("results.postgres.port"),
		User:     viper.GetString("results.postgres.user"),
		Password: viper.GetString("results.postgres.password"),
		DBName:   viper.GetString("results.postgres.dbname"),
		SSLMode:  viper.GetString("results.postgres.sslmode"),
	}
}
