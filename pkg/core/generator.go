package core

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"hashbench/pkg/types"
)

// DefaultCount 是一次生成的摘要数量
const DefaultCount = 100_000

// Generator 负责批量生成随机摘要
// 每个摘要 = Hash(随机浮点数的十进制字符串)
type Generator struct {
	Count     int
	Algorithm Algorithm
	// Float 返回 [0,1) 之间的伪随机数，可在测试中替换
	Float func() float64
}

// NewGenerator 创建生成器
// seed 为 0 时使用运行时的全局随机源；否则使用固定种子的 PCG，结果可复现
func NewGenerator(count int, algo Algorithm, seed uint64) (*Generator, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid hash count: %d", count)
	}
	if _, err := algo.New(); err != nil {
		return nil, err
	}

	float := rand.Float64
	if seed != 0 {
		r := rand.New(rand.NewPCG(seed, seed))
		float = r.Float64
	}

	return &Generator{
		Count:     count,
		Algorithm: algo,
		Float:     float,
	}, nil
}

// FormatFloat 返回浮点数最短的十进制表示 (例如 "0.8238492840257463")
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Generate 生成完整的摘要集合
// 循环有上界，每次调用都重新开始，返回的切片不会被再次修改
func (g *Generator) Generate() ([]types.Digest, error) {
	digests := make([]types.Digest, 0, g.Count)
	for i := 0; i < g.Count; i++ {
		d, err := g.Algorithm.HashString(FormatFloat(g.Float()))
		if err != nil {
			return nil, fmt.Errorf("failed to hash entry %d: %w", i, err)
		}
		digests = append(digests, d)
	}
	return digests, nil
}
