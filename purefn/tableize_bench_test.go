package purefn_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/on-the-ground/sampled_go/purefn"
)

// landau is a slow approximation of the Landau density, by numerical
// integration of its integral representation.
func landau(x float64) float64 {
	const n = 2000
	const upper = 40.0
	h := upper / n
	sum := 0.0
	for i := 1; i < n; i++ {
		t := float64(i) * h
		sum += math.Exp(-t*math.Log(t)-x*t) * math.Sin(math.Pi*t)
	}
	return sum * h / math.Pi
}

func queries(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = -2 + 12*float64(i)/float64(n)
	}
	return xs
}

func BenchmarkNaiveLandau(b *testing.B) {
	xs := queries(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = landau(xs[i%len(xs)])
	}
}

func BenchmarkMemoizedLandau(b *testing.B) {
	fn := purefn.Memoize(landau, 512)
	xs := queries(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fn(xs[i%len(xs)])
	}
}

func BenchmarkTableizedLandau(b *testing.B) {
	subsamples := []int{1, 4, 16}
	for _, n := range subsamples {
		b.Run(fmt.Sprintf("Subsamples_%d", n), func(b *testing.B) {
			fn, err := purefn.TableizeSampled(landau, -2.0, 10.0, 240, n, 32)
			if err != nil {
				b.Fatal(err)
			}
			xs := queries(1024)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = fn(xs[i%len(xs)])
			}
		})
	}
}
