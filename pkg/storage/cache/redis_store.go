package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"hashbench/pkg/storage"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL 是语料在 Redis 中的默认过期时间
const DefaultTTL = 24 * time.Hour

// CachedStore 是一个装饰器，它为底层的 storage.Store 添加 Redis 缓存层
// 与对象存储不同，这里缓存的是语料的原始字节 (十万条 sha512 约 13MB)
type CachedStore struct {
	backend storage.Store // 被装饰的底层存储 (如 S3)
	client  *redis.Client
	ttl     time.Duration
}

type Config struct {
	RedisURL string        // 标准连接字符串: redis://<user>:<password>@<host>:<port>/<db>
	TTL      time.Duration // 过期时间，<= 0 时使用 DefaultTTL
}

func NewCachedStore(backend storage.Store, cfg Config) (*CachedStore, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Fail-fast 连接检查
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &CachedStore{
		backend: backend,
		client:  client,
		ttl:     ttl,
	}, nil
}

// cacheKey 生成 Redis Key，添加前缀防止冲突
func (s *CachedStore) cacheKey(name string) string {
	return "hashbench:corpus:" + name
}

// Get 读穿透：先查 Redis，未命中则读底层并回填
func (s *CachedStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.cacheKey(name)

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return io.NopCloser(bytes.NewReader(data)), nil
	case errors.Is(err, redis.Nil):
		// Cache Miss
	default:
		// 缓存故障降级：Redis 挂了就直接读底层
		log.Printf("WARN: redis error: %v", err)
	}

	data, err = storage.ReadAll(ctx, s.backend, name)
	if err != nil {
		return nil, err
	}

	// 回填失败不影响主流程
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Printf("WARN: redis fill failed: %v", err)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Put 写穿透：底层成功后再写缓存
func (s *CachedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.backend.Put(ctx, name, data); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.cacheKey(name), data, s.ttl).Err(); err != nil {
		log.Printf("WARN: redis fill failed: %v", err)
	}
	return nil
}

// Has 优先查 Redis
func (s *CachedStore) Has(ctx context.Context, name string) (bool, error) {
	val, err := s.client.Exists(ctx, s.cacheKey(name)).Result()
	if err != nil {
		log.Printf("WARN: redis error: %v", err)
	} else if val > 0 {
		return true, nil
	}
	return s.backend.Has(ctx, name)
}

// Invalidate 删除缓存 (底层语料被外部替换时使用)
func (s *CachedStore) Invalidate(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.cacheKey(name)).Err()
}

// Close 释放 Redis 连接
func (s *CachedStore) Close() error {
	return s.client.Close()
}
