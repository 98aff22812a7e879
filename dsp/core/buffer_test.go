package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestIntsToFloats(t *testing.T) {
	out := IntsToFloats(nil, []int{-3, 0, 7})
	want := []float64{-3, 0, 7}
	if len(out) != len(want) {
		t.Fatalf("len = %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestCloneIntsIsIndependent(t *testing.T) {
	src := []int{1, 2, 3}
	dst := CloneInts(src)
	dst[0] = 99
	if src[0] != 1 {
		t.Fatal("CloneInts shares backing array with source")
	}
	if CloneInts(nil) == nil {
		t.Fatal("CloneInts(nil) returned nil")
	}
}
