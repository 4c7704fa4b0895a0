package timing

import (
	"strconv"
	"time"
)

// Sample 是一次计时的结果：被测操作的返回值 + 耗时
type Sample[T any] struct {
	Result  T
	Elapsed time.Duration
}

// Profile 执行 action 并记录墙钟耗时 (time.Since 使用单调时钟)
func Profile[T any](action func() T) Sample[T] {
	start := time.Now()
	result := action()
	return Sample[T]{Result: result, Elapsed: time.Since(start)}
}

// ProfileErr 与 Profile 相同，但透传 action 的错误
// 出错时仍然返回已测得的耗时
func ProfileErr[T any](action func() (T, error)) (Sample[T], error) {
	start := time.Now()
	result, err := action()
	return Sample[T]{Result: result, Elapsed: time.Since(start)}, err
}

// Millis 把 Duration 转成浮点毫秒
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FormatMillis 输出最短的十进制毫秒数，例如 "12.345678"
func FormatMillis(d time.Duration) string {
	return strconv.FormatFloat(Millis(d), 'f', -1, 64)
}

// Measurement 是一条带标签的耗时 (毫秒)，用于打印和持久化
type Measurement struct {
	Label  string
	Millis float64
}

// Measure 把 Duration 包装为 Measurement
func Measure(label string, d time.Duration) Measurement {
	return Measurement{Label: label, Millis: Millis(d)}
}
