package alloc

import (
	"testing"

	"github.com/lispkit/lispkit/lisp"
)

// BenchmarkCons measures steady-state allocation where every cell
// comes from freshly seeded blocks.
func BenchmarkCons(b *testing.B) {
	h := New(&Config{MaxHeapBytes: 1 << 34})
	car := lisp.MakeInt(1)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := h.Cons(car, lisp.Nil); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkConsRecycled measures the fast path: a reclaimed cell is
// reused on every allocation, so the block chain never grows.
func BenchmarkConsRecycled(b *testing.B) {
	h := New(nil)
	v, err := h.Cons(lisp.MakeInt(1), lisp.Nil)
	if err != nil {
		b.Fatal(err)
	}
	ref := v.Ref()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := h.Reclaim(ref); err != nil {
			b.Fatal(err)
		}
		if _, err := h.Cons(lisp.MakeInt(1), lisp.Nil); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSweepIteration measures a full tracer pass over 100 blocks.
func BenchmarkSweepIteration(b *testing.B) {
	h := New(nil)
	for i := 0; i < 100*ConsBlockSize; i++ {
		if _, err := h.Cons(lisp.Nil, lisp.Nil); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		live := 0
		bi := h.Blocks()
		for {
			blk, err := bi.Next()
			if err != nil {
				break
			}
			si := blk.Slots()
			for {
				s, sErr := si.Next()
				if sErr != nil {
					break
				}
				if s.Live {
					live++
				}
			}
		}
		if live == 0 {
			b.Fatal("no live cells seen")
		}
	}
}
