package bench

import (
	"strings"
	"testing"

	"hashbench/pkg/core"
	"hashbench/pkg/types"
)

func BenchmarkContains(b *testing.B) {
	g, err := core.NewGenerator(core.DefaultCount, core.SHA512, 3)
	if err != nil {
		b.Fatal(err)
	}
	digests, err := g.Generate()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("hit-last", func(b *testing.B) {
		target := digests[len(digests)-1]
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Contains(digests, target)
		}
	})

	b.Run("miss", func(b *testing.B) {
		target := types.Digest(strings.Repeat("0", types.DigestLen))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = Contains(digests, target)
		}
	})
}
