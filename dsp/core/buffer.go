package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// IntsToFloats converts integer PCM samples into dst, reusing dst capacity.
func IntsToFloats(dst []float64, src []int) []float64 {
	dst = EnsureLen(dst, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// CloneInts returns a copy of src. A nil src yields an empty, non-nil slice.
func CloneInts(src []int) []int {
	out := make([]int, len(src))
	copy(out, src)
	return out
}
