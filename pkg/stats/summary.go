package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
	mstats "github.com/aclements/go-moremath/stats"
)

var ErrNoSamples = errors.New("no samples")

// relativeAccuracy 是 DDSketch 分位数的相对误差 (1%)
const relativeAccuracy = 0.01

// Summary 汇总多轮测量的耗时
type Summary struct {
	Count int
	Mean  time.Duration
	Min   time.Duration
	Max   time.Duration
	P50   time.Duration
	P95   time.Duration
}

// Summarize 计算均值与上下界 (精确) 以及分位数 (DDSketch 近似)
func Summarize(samples []time.Duration) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	sketch, err := ddsketch.NewDefaultDDSketch(relativeAccuracy)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create sketch: %w", err)
	}

	s := mstats.Sample{Xs: make([]float64, 0, len(samples))}
	for _, d := range samples {
		ns := float64(d.Nanoseconds())
		s.Xs = append(s.Xs, ns)
		// DDSketch 只接受非负值
		if err := sketch.Add(ns); err != nil {
			return Summary{}, fmt.Errorf("failed to add sample: %w", err)
		}
	}
	sort.Float64s(s.Xs)
	s.Sorted = true

	qs, err := sketch.GetValuesAtQuantiles([]float64{0.50, 0.95})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read quantiles: %w", err)
	}

	lo, hi := s.Bounds()
	return Summary{
		Count: len(samples),
		Mean:  time.Duration(s.Mean()),
		Min:   time.Duration(lo),
		Max:   time.Duration(hi),
		P50:   clamp(qs[0], lo, hi),
		P95:   clamp(qs[1], lo, hi),
	}, nil
}

// 分位数是近似值，裁剪到实际观测范围内
func clamp(v, lo, hi float64) time.Duration {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return time.Duration(v)
}
