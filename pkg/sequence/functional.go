package sequence

import (
	"cmp"
	"iter"
	"slices"
	"sort"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// FromMapSorted creates an Iterator over the values of data in ascending key order.
func FromMapSorted[K cmp.Ordered, T any](data map[K]T) *Iterator[T] {
	keys := make([]K, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, k := range keys {
				if !yield(data[k]) {
					return
				}
			}
		},
	}
}

// Seq returns the underlying sequence function for the iterator.
// This allows direct use in range-over-func loops.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Sort returns a new Iterator with elements sorted according to the provided less function.
// The less function should return true if a < b.
func (i *Iterator[T]) Sort(less func(a, b T) bool) *Iterator[T] {
	data := i.Collect()
	sort.SliceStable(data, func(a, b int) bool {
		return less(data[a], data[b])
	})
	return From(data)
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Find returns the first element matching the predicate, or false if not found.
func (i *Iterator[T]) Find(pred func(T) bool) (T, bool) {
	var zero T
	found := false
	i.seq(func(v T) bool {
		if pred(v) {
			zero = v
			found = true
			return false
		}
		return true
	})
	return zero, found
}

// Any returns true if any element matches the predicate.
func (i *Iterator[T]) Any(pred func(T) bool) bool {
	_, found := i.Find(pred)
	return found
}

// Count returns the number of elements in the iterator.
func (i *Iterator[T]) Count() int {
	count := 0
	i.seq(func(_ T) bool {
		count++
		return true
	})
	return count
}

// Flatten flattens an iterator of slices into a single iterator.
func Flatten[T any](it *Iterator[[]T]) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			it.seq(func(slice []T) bool {
				for _, v := range slice {
					if !yield(v) {
						return false
					}
				}
				return true
			})
		},
	}
}

// Map returns an iterator that yields mapFn(v) for each element.
func Map[T any, R any](it *Iterator[T], mapFn func(T) R) *Iterator[R] {
	return &Iterator[R]{
		seq: func(yield func(R) bool) {
			it.seq(func(v T) bool {
				return yield(mapFn(v))
			})
		},
	}
}
