package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound = errors.New("object not found")
)

// Store defines the interface for a corpus storage backend.
// Implementations can be local disk, object storage, or a cache in front of either.
type Store interface {
	// Put 按名字写入一份完整的语料 (覆盖已有内容)
	Put(ctx context.Context, name string, data []byte) error

	// Get 按名字读取原始数据，不存在时返回 ErrNotFound
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Has 检查对象是否存在
	Has(ctx context.Context, name string) (bool, error)
}

// ReadAll 读取整个对象并关闭 reader
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	rc, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
