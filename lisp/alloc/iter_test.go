package alloc

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lispkit/lispkit/lisp"
)

func Test_EmptyHeapIteration(t *testing.T) {
	h := New(nil)
	_, err := h.Blocks().Next()
	require.ErrorIs(t, err, io.EOF)
}

func Test_BlocksNewestFirst(t *testing.T) {
	h := New(nil)
	for i := 0; i < 2*ConsBlockSize+1; i++ {
		mustCons(t, h, lisp.Nil, lisp.Nil)
	}

	it := h.Blocks()
	var bases []lisp.Ref
	for {
		b, err := it.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Equal(t, ConsBlockSize, b.Len())
		bases = append(bases, b.Base())
	}
	require.Equal(t, []lisp.Ref{2 * ConsBlockSize, ConsBlockSize, 0}, bases)
}

func Test_SlotReporting(t *testing.T) {
	h := New(nil)
	v := mustCons(t, h, lisp.MakeInt(7), lisp.T)
	dead := mustCons(t, h, lisp.MakeInt(8), lisp.Nil)
	require.NoError(t, h.SetMark(v.Ref()))
	require.NoError(t, h.Reclaim(dead.Ref()))
	require.NoError(t, h.MarkPure(v.Ref()))

	slots := collectSlots(t, h)
	require.Len(t, slots, ConsBlockSize)

	byRef := make(map[lisp.Ref]SlotInfo, len(slots))
	for i, s := range slots {
		// Slot order matches bit order within the block.
		require.Equal(t, lisp.Ref(i), s.Ref)
		byRef[s.Ref] = s
	}

	got := byRef[v.Ref()]
	require.True(t, got.Live)
	require.True(t, got.Marked)
	require.True(t, got.Pure)
	require.Equal(t, int64(7), got.Car.Int())
	require.True(t, got.Cdr.Eq(lisp.T))

	gone := byRef[dead.Ref()]
	require.False(t, gone.Live)
	require.True(t, gone.Car.IsNil())

	// Never-used slots report free with no fields.
	free := byRef[lisp.Ref(ConsBlockSize-1)]
	require.False(t, free.Live)
	require.False(t, free.Marked)
	require.False(t, free.Pure)
}
