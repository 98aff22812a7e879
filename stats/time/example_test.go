package time_test

import (
	"fmt"

	stats "github.com/cwbudde/algo-motion/stats/time"
)

func ExampleCalculate() {
	s := stats.Calculate([]int{0, 16384, 0, -16384}, 16)
	fmt.Printf("peak=%d dc=%.0f zc=%d peak_dbfs=%.2f\n", s.Peak, s.DC, s.ZeroCrossings, s.PeakdBFS)

	// Output:
	// peak=16384 dc=0 zc=0 peak_dbfs=-6.02
}
