package bench

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"hashbench/pkg/corpus"
	"hashbench/pkg/storage"
	"hashbench/pkg/timing"
	"hashbench/pkg/types"
)

// ErrAssertion 表示包含性检查的结果与预期不符，整个基准结果作废
var ErrAssertion = errors.New("lookup assertion failed")

// 两个已知存在于参考语料中的摘要
const (
	ExistingDigest1 types.Digest = "b328948ec393d0533d7ce0d4e31a5ab55ced06f2a77209d46f1c9210a203f1b1c1abdf8fc4d80a1a4b36eab09ebc95333f0871417e9a7d4cba8909f1dda5c578"
	ExistingDigest2 types.Digest = "2380d984ce5a5a072c7a3066f18e43f3037ce528e82c0325d8deb0fd743a930cab599563322c3a5b4fa9cb63001b348ac677f30e75ad8130d8aabb607371a451"
)

// Probe 是一次包含性检查及其预期结果
type Probe struct {
	Label  string
	Digest types.Digest
	Want   bool
}

// DefaultProbes 返回两个必然存在、两个必然不存在的探针
func DefaultProbes() []Probe {
	return []Probe{
		{Label: "existing hash 1", Digest: ExistingDigest1, Want: true},
		{Label: "existing hash 2", Digest: ExistingDigest2, Want: true},
		{Label: "nonexistent hash 1", Digest: types.Digest(strings.Repeat("0", len(ExistingDigest1))), Want: false},
		{Label: "nonexistent hash 2", Digest: types.Digest(strings.Repeat("f", len(ExistingDigest2))), Want: false},
	}
}

// Check 是单个探针的测量结果
type Check struct {
	Probe   Probe
	Found   bool
	Elapsed time.Duration   // 第一轮耗时
	Rounds  []time.Duration // 所有轮次 (含第一轮)
}

// Report 是一次 includesTest 的全部测量
type Report struct {
	Corpus string
	Format corpus.Format
	Size   int
	Load   time.Duration
	Parse  time.Duration
	Checks []Check
}

// Options 控制基准的输入
type Options struct {
	Name   string        // 语料名，默认 corpus.DefaultName
	Format corpus.Format // 默认 JSON
	Probes []Probe       // 默认 DefaultProbes()
	Rounds int           // 每个探针重复的次数，默认 1
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = corpus.DefaultName
	}
	if o.Format == "" {
		o.Format = corpus.JSON
	}
	if o.Probes == nil {
		o.Probes = DefaultProbes()
	}
	if o.Rounds <= 0 {
		o.Rounds = 1
	}
	return o
}

// Runner 从存储中加载语料并执行包含性检查
type Runner struct {
	store storage.Store
}

func NewRunner(store storage.Store) *Runner {
	return &Runner{store: store}
}

// Contains 是对整个切片的线性扫描
func Contains(digests []types.Digest, d types.Digest) bool {
	return slices.Contains(digests, d)
}

// Run 依次执行：读取 -> 解析 -> 每个探针的包含性检查
// 任何一步失败都立即返回，不保留部分结果
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	// 1. 读取原始内容 (与解析分开计时)
	raw, err := timing.ProfileErr(func() ([]byte, error) {
		return storage.ReadAll(ctx, r.store, opts.Name)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus %s: %w", opts.Name, err)
	}

	// 2. 解析
	parsed, err := timing.ProfileErr(func() ([]types.Digest, error) {
		return corpus.Decode(raw.Result, opts.Format)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", opts.Name, err)
	}
	digests := parsed.Result

	report := &Report{
		Corpus: opts.Name,
		Format: opts.Format,
		Size:   len(digests),
		Load:   raw.Elapsed,
		Parse:  parsed.Elapsed,
		Checks: make([]Check, 0, len(opts.Probes)),
	}

	// 3. 包含性检查，断言失败立即终止
	for _, p := range opts.Probes {
		check := Check{Probe: p, Rounds: make([]time.Duration, 0, opts.Rounds)}
		for i := 0; i < opts.Rounds; i++ {
			s := timing.Profile(func() bool { return Contains(digests, p.Digest) })
			if s.Result != p.Want {
				return nil, fmt.Errorf("%w: %s: got %t, want %t", ErrAssertion, p.Label, s.Result, p.Want)
			}
			if i == 0 {
				check.Found = s.Result
				check.Elapsed = s.Elapsed
			}
			check.Rounds = append(check.Rounds, s.Elapsed)
		}
		report.Checks = append(report.Checks, check)
	}

	return report, nil
}
