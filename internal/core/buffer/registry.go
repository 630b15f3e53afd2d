package buffer

import (
	"fmt"
	"sync"
)

// Registry hands out buffer indices the way game code sees them. Indices of
// deleted buffers are reused lowest first.
type Registry struct {
	mu      sync.Mutex
	buffers map[int]*Buffer
}

func NewRegistry() *Registry {
	return &Registry{buffers: make(map[int]*Buffer)}
}

// Create allocates a buffer and returns its index.
func (r *Registry) Create(size int, kind Kind, alignment int) (int, *Buffer, error) {
	buf, err := New(size, kind, alignment)
	if err != nil {
		return -1, nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	index := 0
	for {
		if _, taken := r.buffers[index]; !taken {
			break
		}
		index++
	}
	r.buffers[index] = buf
	return index, buf, nil
}

func (r *Registry) Get(index int) (*Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.buffers[index]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBufferNotFound, index)
	}
	return buf, nil
}

func (r *Registry) Delete(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.buffers[index]; !ok {
		return fmt.Errorf("%w: %d", ErrBufferNotFound, index)
	}
	delete(r.buffers, index)
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffers)
}
