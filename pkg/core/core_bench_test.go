package core

import (
	"fmt"
	"testing"
)

func BenchmarkHashString(b *testing.B) {
	for _, algo := range Algorithms() {
		b.Run(algo.String(), func(b *testing.B) {
			input := FormatFloat(0.8238492840257463)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = algo.HashString(input)
			}
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	for _, n := range []int{1_000, 10_000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			g, err := NewGenerator(n, SHA512, 1)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := g.Generate(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
