package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hashbench/pkg/storage"
)

// Adapter 实现了 storage.Store 接口
type Adapter struct {
	rootPath string // 比如: 当前工作目录 "."
}

// NewAdapter 创建一个新的磁盘存储适配器
func NewAdapter(root string) (*Adapter, error) {
	if root == "" {
		root = "."
	}
	// 确保根目录存在
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage dir: %w", err)
	}
	return &Adapter{rootPath: root}, nil
}

// layout 返回名字对应的物理路径
// 语料名不是哈希，不做分片，直接放在根目录下
func (s *Adapter) layout(name string) string {
	return filepath.Join(s.rootPath, filepath.Clean(name))
}

func (s *Adapter) Put(ctx context.Context, name string, data []byte) error {
	targetPath := s.layout(name)

	dir := filepath.Dir(targetPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// 原子写入：先写临时文件再 Rename，读者要么看到旧文件，要么看到完整的新文件
	tempFile, err := os.CreateTemp(dir, "temp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	// CreateTemp 默认是 0600
	if err := tempFile.Chmod(0644); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}

	if err := os.Rename(tempFile.Name(), targetPath); err != nil {
		return err
	}
	return nil
}

func (s *Adapter) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.layout(name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Adapter) Has(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.layout(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
