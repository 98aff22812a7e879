package band

import (
	"testing"

	"github.com/cwbudde/algo-motion/internal/testutil"
)

func BenchmarkApply(b *testing.B) {
	for _, bc := range []struct {
		name string
		n    int
	}{
		{name: "pow2-65536", n: 65536},
		{name: "mixed-88200", n: 88200},
	} {
		in := testutil.PCMNoise(1, 10000, bc.n)
		f, err := New(44100, LowPass(1000))
		if err != nil {
			b.Fatal(err)
		}
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := f.Apply(in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
