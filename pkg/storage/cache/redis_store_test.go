package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"hashbench/pkg/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// 1. SpyStore (间谍存储)
// 用于统计底层方法被调用的次数，验证请求是否穿透了缓存
// -----------------------------------------------------------------------------
type SpyStore struct {
	getCount int32
	putCount int32
	hasCount int32
	objects  map[string][]byte
}

func NewSpyStore() *SpyStore {
	return &SpyStore{objects: make(map[string][]byte)}
}

func (s *SpyStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	atomic.AddInt32(&s.getCount, 1)
	data, ok := s.objects[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *SpyStore) Put(ctx context.Context, name string, data []byte) error {
	atomic.AddInt32(&s.putCount, 1)
	s.objects[name] = data
	return nil
}

func (s *SpyStore) Has(ctx context.Context, name string) (bool, error) {
	atomic.AddInt32(&s.hasCount, 1)
	_, ok := s.objects[name]
	return ok, nil
}

func TestNewCachedStore_InvalidURL(t *testing.T) {
	_, err := NewCachedStore(NewSpyStore(), Config{RedisURL: "not-a-url"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}

// Redis 不可用时所有操作都降级到底层存储
func TestCachedStore_RedisDownFallsBack(t *testing.T) {
	ctx := context.Background()
	spy := NewSpyStore()
	// 127.0.0.1:1 上没有服务，每个命令都会立刻失败
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	s := &CachedStore{backend: spy, client: client, ttl: time.Minute}
	defer s.Close()

	require.NoError(t, s.Put(ctx, "c.json", []byte(`["aa"]`)))
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.putCount))

	data, err := storage.ReadAll(ctx, s, "c.json")
	require.NoError(t, err)
	assert.Equal(t, `["aa"]`, string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.getCount))

	// 没有缓存可用，第二次读取仍然落到底层
	_, err = storage.ReadAll(ctx, s, "c.json")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&spy.getCount))

	exists, err := s.Has(ctx, "c.json")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.hasCount))

	exists, err = s.Has(ctx, "ghost.json")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.Get(ctx, "ghost.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// -----------------------------------------------------------------------------
// 2. 集成测试
// -----------------------------------------------------------------------------

func TestCachedStore_Integration(t *testing.T) {
	// A. 环境检查: 确保 Redis 在运行
	redisAddr := "localhost:6379"
	conn, err := net.DialTimeout("tcp", redisAddr, 1*time.Second)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	conn.Close()

	// B. 初始化
	ctx := context.Background()
	spy := NewSpyStore()
	cachedStore, err := NewCachedStore(spy, Config{
		RedisURL: fmt.Sprintf("redis://%s/0", redisAddr),
		TTL:      1 * time.Hour,
	})
	require.NoError(t, err)
	defer cachedStore.Close()

	name := fmt.Sprintf("it-%d.json", time.Now().UnixNano())
	defer cachedStore.Invalidate(ctx, name)
	spy.objects[name] = []byte(`["aa"]`)

	// --- Step 1: Cache Miss ---
	data, err := storage.ReadAll(ctx, cachedStore, name)
	require.NoError(t, err)
	assert.Equal(t, `["aa"]`, string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.getCount), "Backend Get() should be called on miss")

	// --- Step 2: Cache Hit ---
	data, err = storage.ReadAll(ctx, cachedStore, name)
	require.NoError(t, err)
	assert.Equal(t, `["aa"]`, string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.getCount), "Backend Get() should NOT be called on hit")

	// --- Step 3: Put (Write-Through) ---
	require.NoError(t, cachedStore.Put(ctx, name, []byte(`["bb"]`)))
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.putCount))

	data, err = storage.ReadAll(ctx, cachedStore, name)
	require.NoError(t, err)
	assert.Equal(t, `["bb"]`, string(data), "cache must see the new content after Put")

	// --- Step 4: Has 命中缓存 ---
	exists, err := cachedStore.Has(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int32(0), atomic.LoadInt32(&spy.hasCount), "Backend Has() should NOT be called on hit")

	// --- Step 5: 底层也不存在时透传 ErrNotFound ---
	_, err = cachedStore.Get(ctx, "ghost-"+name)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
