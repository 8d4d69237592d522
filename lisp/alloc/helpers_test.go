package alloc

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lispkit/lispkit/lisp"
)

// mustCons allocates a cell or fails the test.
func mustCons(t testing.TB, h *Heap, car, cdr lisp.Value) lisp.Value {
	t.Helper()
	v, err := h.Cons(car, cdr)
	require.NoError(t, err)
	return v
}

// mustCar / mustCdr read a field or fail the test.
func mustCar(t testing.TB, h *Heap, v lisp.Value) lisp.Value {
	t.Helper()
	car, err := h.Car(v)
	require.NoError(t, err)
	return car
}

func mustCdr(t testing.TB, h *Heap, v lisp.Value) lisp.Value {
	t.Helper()
	cdr, err := h.Cdr(v)
	require.NoError(t, err)
	return cdr
}

// collectSlots drains a heap's tracer iteration into a flat slice,
// newest block first.
func collectSlots(t testing.TB, h *Heap) []SlotInfo {
	t.Helper()
	var out []SlotInfo
	bi := h.Blocks()
	for {
		b, err := bi.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		si := b.Slots()
		for {
			s, sErr := si.Next()
			if errors.Is(sErr, io.EOF) {
				break
			}
			require.NoError(t, sErr)
			out = append(out, s)
		}
	}
	return out
}

// sweep simulates the external collector's sweep phase: every live,
// unmarked cell is reclaimed, then all mark bits are cleared.
func sweep(t testing.TB, h *Heap) int {
	t.Helper()
	reclaimed := 0
	for _, s := range collectSlots(t, h) {
		if s.Live && !s.Marked {
			require.NoError(t, h.Reclaim(s.Ref))
			reclaimed++
		}
	}
	h.ClearAllMarks()
	return reclaimed
}

// markList marks every cell reachable down the cdr chain from v, the
// way a tracer would follow a proper list.
func markList(t testing.TB, h *Heap, v lisp.Value) {
	t.Helper()
	for h.Consp(v) {
		require.NoError(t, h.SetMark(v.Ref()))
		v = mustCdr(t, h, v)
	}
}
