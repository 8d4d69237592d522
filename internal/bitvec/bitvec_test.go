package bitvec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_WordSizing(t *testing.T) {
	// Word count is 1 + n/WordBits, matching the block bitmap layout.
	require.Equal(t, 1, New(0).Words())
	require.Equal(t, 1, New(63).Words())
	require.Equal(t, 2, New(64).Words())
	require.Equal(t, 2, New(100).Words())
	require.Equal(t, 3, New(128).Words())
}

func Test_SetClearTest(t *testing.T) {
	v := New(100)
	for _, i := range []int{0, 1, 63, 64, 99} {
		require.False(t, v.Test(i))
		v.Set(i)
		require.True(t, v.Test(i))
	}
	require.Equal(t, 5, v.Count())

	v.Clear(64)
	require.False(t, v.Test(64))
	require.True(t, v.Test(63))
	require.Equal(t, 4, v.Count())
}

func Test_ClearAll(t *testing.T) {
	v := New(100)
	for i := 0; i < 100; i++ {
		v.Set(i)
	}
	require.Equal(t, 100, v.Count())

	v.ClearAll()
	require.Equal(t, 0, v.Count())
	for i := 0; i < 100; i++ {
		require.False(t, v.Test(i))
	}
}
