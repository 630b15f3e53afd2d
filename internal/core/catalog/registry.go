package catalog

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/zeusync/gmruntime/pkg/sequence"
)

var ErrDuplicateKey = errors.New("duplicate registry key")

// Registry is a keyed store that refuses to overwrite an existing key.
type Registry[K cmp.Ordered, V any] struct {
	name  string
	items map[K]V
}

func NewRegistry[K cmp.Ordered, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{name: name, items: make(map[K]V)}
}

func (r *Registry[K, V]) Add(key K, value V) error {
	if _, ok := r.items[key]; ok {
		return fmt.Errorf("%w: %s %v", ErrDuplicateKey, r.name, key)
	}
	r.items[key] = value
	return nil
}

func (r *Registry[K, V]) Get(key K) (V, bool) {
	v, ok := r.items[key]
	return v, ok
}

func (r *Registry[K, V]) Has(key K) bool {
	_, ok := r.items[key]
	return ok
}

func (r *Registry[K, V]) Len() int {
	return len(r.items)
}

// All iterates values in ascending key order.
func (r *Registry[K, V]) All() *sequence.Iterator[V] {
	return sequence.FromMapSorted(r.items)
}

func (r *Registry[K, V]) clear() {
	clear(r.items)
}
