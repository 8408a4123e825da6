package growbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_EnsureGrowsAndKeepsContent(t *testing.T) {
	var b Buffer[int]
	require.NoError(t, b.Ensure(3))
	require.Equal(t, 3, b.Len())
	s := b.Slice()
	s[0], s[1], s[2] = 7, 8, 9

	require.NoError(t, b.Ensure(500))
	require.Equal(t, 500, b.Len())
	require.Equal(t, []int{7, 8, 9}, b.Slice()[:3])
	require.Zero(t, b.Slice()[499])
	require.GreaterOrEqual(t, cap(b.Slice()), 500)

	// shrinking requests are no-ops
	require.NoError(t, b.Ensure(10))
	require.Equal(t, 500, b.Len())
}

func TestBuffer_ResetZeroes(t *testing.T) {
	var b Buffer[int]
	require.NoError(t, b.Ensure(4))
	b.Slice()[3] = 42
	b.Reset()
	require.Equal(t, 0, b.Len())
	require.NoError(t, b.Ensure(4))
	require.Zero(t, b.Slice()[3])
}

func TestBuffer_TooLarge(t *testing.T) {
	var b Buffer[byte]
	require.ErrorIs(t, b.Ensure(MaxLen+1), ErrTooLarge)
}
