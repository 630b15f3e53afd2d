package concurrent

import (
	"context"

	"github.com/zeusync/gmruntime/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// ParallelMap applies mapFn to each element of the iterator in parallel, preserving order.
// At most workers calls run at once; workers <= 0 means no limit. The first error cancels
// ctx for the remaining calls and is returned with a nil slice.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	errGroup, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		errGroup.SetLimit(workers)
	}

	for idx, val := range in {
		errGroup.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := mapFn(gctx, val)
			if err != nil {
				return err
			}
			out[idx] = res
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
