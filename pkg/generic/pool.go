package generic

import "sync"

// Pool is a typed sync.Pool. Values returned by Get have already been
// passed through reset, so callers never see another user's leftovers.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// NewPool builds values with generate. reset may be nil.
func NewPool[T any](generate func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return generate()
			},
		},
		reset: reset,
	}
}

func (p *Pool[T]) Get() T {
	value := p.pool.Get().(T)
	if p.reset != nil {
		p.reset(value)
	}
	return value
}

func (p *Pool[T]) Put(value T) {
	p.pool.Put(value)
}

// With lends a pooled value to fn for the duration of the call.
func With[T, R any](p *Pool[T], fn func(T) R) R {
	value := p.Get()
	defer p.Put(value)
	return fn(value)
}
