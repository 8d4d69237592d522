package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lispkit/lispkit/lisp"
)

func Test_MarkBits(t *testing.T) {
	h := New(nil)
	a := mustCons(t, h, lisp.Nil, lisp.Nil)
	b := mustCons(t, h, lisp.Nil, lisp.Nil)

	require.False(t, h.IsMarked(a.Ref()))
	require.NoError(t, h.SetMark(a.Ref()))
	require.True(t, h.IsMarked(a.Ref()))
	// Bit positions are per-slot; the neighbor is untouched.
	require.False(t, h.IsMarked(b.Ref()))

	require.NoError(t, h.ClearMark(a.Ref()))
	require.False(t, h.IsMarked(a.Ref()))

	require.ErrorIs(t, h.SetMark(lisp.Ref(1_000_000)), ErrBadRef)
	require.ErrorIs(t, h.ClearMark(lisp.Ref(1_000_000)), ErrBadRef)
	require.False(t, h.IsMarked(lisp.Ref(1_000_000)))
}

func Test_ClearAllMarks(t *testing.T) {
	h := New(nil)
	var refs []lisp.Ref
	for i := 0; i < ConsBlockSize+10; i++ { // span two blocks
		v := mustCons(t, h, lisp.Nil, lisp.Nil)
		refs = append(refs, v.Ref())
		require.NoError(t, h.SetMark(v.Ref()))
	}

	h.ClearAllMarks()
	for _, r := range refs {
		require.False(t, h.IsMarked(r))
	}
}

func Test_FindKind(t *testing.T) {
	h := New(nil)

	// Nothing registered before the first block exists.
	_, ok := h.FindKind(0)
	require.False(t, ok)

	for i := 0; i < ConsBlockSize+1; i++ {
		mustCons(t, h, lisp.Nil, lisp.Nil)
	}

	// Any slot of either block classifies as cons storage.
	for _, r := range []lisp.Ref{0, 1, ConsBlockSize - 1, ConsBlockSize, 2*ConsBlockSize - 1} {
		k, found := h.FindKind(r)
		require.True(t, found, "ref %#x", r)
		require.Equal(t, lisp.KindCons, k)
	}

	_, ok = h.FindKind(2 * ConsBlockSize)
	require.False(t, ok)
}

// Test_MarkSweepCycle runs the whole collector contract against the
// heap: trace a live list, reclaim everything unmarked via the slot
// iteration, and verify the free list and accounting afterwards.
func Test_MarkSweepCycle(t *testing.T) {
	h := New(nil)

	// A live three-element list and a pile of garbage.
	live, err := h.List(lisp.MakeInt(1), lisp.MakeInt(2), lisp.MakeInt(3))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		mustCons(t, h, lisp.MakeInt(int64(i)), lisp.Nil)
	}

	markList(t, h, live)
	reclaimed := sweep(t, h)
	require.Equal(t, 50, reclaimed)
	h.ResetConsing()

	// The live list survived intact.
	require.Equal(t, int64(1), mustCar(t, h, live).Int())
	rest := mustCdr(t, h, live)
	require.Equal(t, int64(2), mustCar(t, h, rest).Int())

	require.Equal(t, int64(0), h.ConsingSinceGC())
	require.Equal(t, int64(ConsBlockSize-3), h.FreeConses())

	// A second cycle with nothing marked reclaims the list too.
	reclaimed = sweep(t, h)
	require.Equal(t, 3, reclaimed)
	require.Equal(t, int64(ConsBlockSize), h.FreeConses())
}
