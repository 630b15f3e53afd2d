package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/gmruntime/pkg/sequence"
)

func TestParallelMap_PreservesOrder(t *testing.T) {
	in := make([]int, 64)
	for i := range in {
		in[i] = i
	}

	out, err := ParallelMap(context.Background(), sequence.From(in), 4, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i, v := range out {
		require.Equal(t, i*i, v)
	}
}

func TestParallelMap_Error(t *testing.T) {
	boom := errors.New("boom")
	out, err := ParallelMap(context.Background(), sequence.From([]string{"a", "b", "c"}), 0, func(_ context.Context, v string) (string, error) {
		if v == "b" {
			return "", boom
		}
		return v, nil
	})
	require.ErrorIs(t, err, boom)
	require.Nil(t, out)
}

func TestParallelMap_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := ParallelMap(ctx, sequence.From([]int{1, 2, 3}), 1, func(_ context.Context, v int) (int, error) {
		calls.Add(1)
		return v, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, calls.Load())
}
