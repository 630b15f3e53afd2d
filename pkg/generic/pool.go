package generic

import "sync"

// Pool is a typed sync.Pool. Values are passed through keep before being
// returned to the pool; keep may reset the value and reports whether it is
// worth retaining.
type Pool[T any] struct {
	pool sync.Pool
	keep func(T) bool
}

func NewPool[T any](generate func() T, keep func(T) bool) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		keep: keep,
	}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(value T) {
	if p.keep != nil && !p.keep(value) {
		return
	}
	p.pool.Put(value)
}
