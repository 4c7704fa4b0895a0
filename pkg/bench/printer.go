package bench

import (
	"fmt"
	"io"
	"strconv"

	"hashbench/pkg/stats"
	"hashbench/pkg/timing"
)

// Measurements 把报告展开为 "标签 -> 毫秒" 列表，顺序与输出一致
func (r *Report) Measurements() []timing.Measurement {
	label := r.Format.Label()
	ms := []timing.Measurement{
		timing.Measure("Time to load "+label, r.Load),
		timing.Measure("Time to parse "+label, r.Parse),
	}
	for _, c := range r.Checks {
		ms = append(ms, timing.Measure("Inclusion test for "+c.Probe.Label, c.Elapsed))
	}
	return ms
}

// Summaries 多轮时为每个探针追加 mean / p50 / p95
func (r *Report) Summaries() ([]timing.Measurement, error) {
	var ms []timing.Measurement
	for _, c := range r.Checks {
		if len(c.Rounds) < 2 {
			continue
		}
		s, err := stats.Summarize(c.Rounds)
		if err != nil {
			return nil, err
		}
		prefix := fmt.Sprintf("Inclusion test for %s (%d rounds)", c.Probe.Label, s.Count)
		ms = append(ms,
			timing.Measure(prefix+" mean", s.Mean),
			timing.Measure(prefix+" p50", s.P50),
			timing.Measure(prefix+" p95", s.P95),
		)
	}
	return ms, nil
}

// AllMeasurements 是基础测量加上多轮汇总，打印和持久化共用同一份
func (r *Report) AllMeasurements() ([]timing.Measurement, error) {
	summaries, err := r.Summaries()
	if err != nil {
		return nil, err
	}
	return append(r.Measurements(), summaries...), nil
}

// WriteReport 每个测量输出一行 "<label>: <ms> ms"
func WriteReport(w io.Writer, ms []timing.Measurement) error {
	for _, m := range ms {
		if err := WriteMeasurement(w, m); err != nil {
			return err
		}
	}
	return nil
}

func WriteMeasurement(w io.Writer, m timing.Measurement) error {
	_, err := fmt.Fprintf(w, "%s: %s ms\n", m.Label, strconv.FormatFloat(m.Millis, 'f', -1, 64))
	return err
}
