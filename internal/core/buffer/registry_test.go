package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()

	first, _, err := r.Create(16, Fixed, 1)
	require.NoError(t, err)
	second, buf, err := r.Create(4, Wrap, 1)
	require.NoError(t, err)
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
	require.Equal(t, Wrap, buf.Kind())

	got, err := r.Get(second)
	require.NoError(t, err)
	require.Same(t, buf, got)

	require.NoError(t, r.Delete(first))
	require.ErrorIs(t, r.Delete(first), ErrBufferNotFound)
	_, err = r.Get(first)
	require.ErrorIs(t, err, ErrBufferNotFound)

	reused, _, err := r.Create(1, Grow, 1)
	require.NoError(t, err)
	require.Equal(t, first, reused)
	require.Equal(t, 2, r.Len())
}

func TestRegistry_CreateRejectsBadSize(t *testing.T) {
	r := NewRegistry()
	index, buf, err := r.Create(-3, Fixed, 1)
	require.ErrorIs(t, err, ErrInvalidSize)
	require.Equal(t, -1, index)
	require.Nil(t, buf)
	require.Equal(t, 0, r.Len())
}
