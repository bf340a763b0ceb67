package pool

import "sync"

// Resetter is implemented by pooled values that clear themselves before reuse.
type Resetter interface {
	Reset()
}

// Pool is a typed wrapper around sync.Pool.
type Pool[T any] struct {
	p sync.Pool
}

// New returns a Pool that allocates fresh values with fn.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{p: sync.Pool{New: func() any { return fn() }}}
}

func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put returns v to the pool, resetting it first when supported.
func (p *Pool[T]) Put(v T) {
	if r, ok := any(v).(Resetter); ok {
		r.Reset()
	}
	p.p.Put(v)
}
