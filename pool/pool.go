// Package pool reuses a bounded number of agent instances.
package pool

import "errors"

// ErrExhausted is returned by Acquire when every slot is active.
var ErrExhausted = errors.New("pool: exhausted")

// Slotted values know the pool slot they were instantiated for.
type Slotted interface {
	Slot() int
}

// Hooks are the host callbacks of a pool. Instantiate runs once per slot;
// Activate and Deactivate run on every reuse.
type Hooks[T Slotted] struct {
	Instantiate func(slot int) T
	Activate    func(T)
	Deactivate  func(T)
}

// Pool hands out at most Capacity instances. It never grows.
type Pool[T Slotted] struct {
	hooks  Hooks[T]
	items  []T
	active []bool
	count  int
}

func New[T Slotted](capacity int, hooks Hooks[T]) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		hooks:  hooks,
		items:  make([]T, 0, capacity),
		active: make([]bool, capacity),
	}
}

// ActivateNext activates a parked instance, instantiating a new one while
// there is room. It returns false when the pool is exhausted.
func (p *Pool[T]) ActivateNext() (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	slot := -1
	for i := range p.items {
		if !p.active[i] {
			slot = i
			break
		}
	}
	if slot < 0 {
		if len(p.items) == cap(p.items) {
			return zero, false
		}
		slot = len(p.items)
		p.items = append(p.items, p.hooks.Instantiate(slot))
	}
	item := p.items[slot]
	p.active[slot] = true
	p.count++
	if p.hooks.Activate != nil {
		p.hooks.Activate(item)
	}
	return item, true
}

// Acquire is ActivateNext for callers that prefer an error.
func (p *Pool[T]) Acquire() (T, error) {
	item, ok := p.ActivateNext()
	if !ok {
		return item, ErrExhausted
	}
	return item, nil
}

// Deactivate parks item. Items that are not active in this pool are ignored.
func (p *Pool[T]) Deactivate(item T) bool {
	if p == nil {
		return false
	}
	slot := item.Slot()
	if slot < 0 || slot >= len(p.items) || !p.active[slot] {
		return false
	}
	p.active[slot] = false
	p.count--
	if p.hooks.Deactivate != nil {
		p.hooks.Deactivate(item)
	}
	return true
}

// IsActive reports whether slot currently holds an active instance.
func (p *Pool[T]) IsActive(slot int) bool {
	return p != nil && slot >= 0 && slot < len(p.items) && p.active[slot]
}

// Active is the number of active instances.
func (p *Pool[T]) Active() int {
	if p == nil {
		return 0
	}
	return p.count
}

// Len is the number of instances created so far.
func (p *Pool[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

func (p *Pool[T]) Capacity() int {
	if p == nil {
		return 0
	}
	return cap(p.items)
}

// Each calls fn for every active instance in slot order.
func (p *Pool[T]) Each(fn func(T)) {
	if p == nil {
		return
	}
	for i, item := range p.items {
		if p.active[i] {
			fn(item)
		}
	}
}

// Snapshot returns the active instances in slot order.
func (p *Pool[T]) Snapshot(out []T) []T {
	p.Each(func(item T) { out = append(out, item) })
	return out
}
