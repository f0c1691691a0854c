package director

import (
	"math/rand"

	"github.com/milk9111/melee/pool"
)

const unlinked = -1

type node[T pool.Slotted] struct {
	value      T
	next, prev int32
}

// Queue is a circular doubly linked list over a fixed arena of nodes, one
// per pool slot. Membership changes never allocate.
type Queue[T pool.Slotted] struct {
	nodes []node[T]
	head  int32
	count int
	buf   []int32
}

// NewQueue creates a queue able to hold capacity slots.
func NewQueue[T pool.Slotted](capacity int) *Queue[T] {
	q := &Queue[T]{
		nodes: make([]node[T], capacity),
		head:  unlinked,
		buf:   make([]int32, 0, capacity),
	}
	for i := range q.nodes {
		q.nodes[i].next = unlinked
		q.nodes[i].prev = unlinked
	}
	return q
}

// Add appends v at the tail. Adding a queued value is a no-op.
func (q *Queue[T]) Add(v T) {
	i, ok := q.slot(v)
	if !ok || q.nodes[i].next != unlinked {
		return
	}
	q.nodes[i].value = v
	q.insertTail(i)
}

// Remove unlinks v. Removing a value that is not queued is a no-op.
func (q *Queue[T]) Remove(v T) {
	i, ok := q.slot(v)
	if !ok || q.nodes[i].next == unlinked {
		return
	}
	q.unlink(i)
}

// PopNext removes and returns the head.
func (q *Queue[T]) PopNext() (T, bool) {
	var zero T
	if q.head == unlinked {
		return zero, false
	}
	i := q.head
	v := q.nodes[i].value
	q.unlink(i)
	return v, true
}

// Peek returns the head without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if q.head == unlinked {
		return zero, false
	}
	return q.nodes[q.head].value, true
}

// Jumble shuffles the queued order.
func (q *Queue[T]) Jumble(rng *rand.Rand) {
	if q.count <= 1 || rng == nil {
		return
	}
	q.buf = q.buf[:0]
	i := q.head
	for range q.count {
		q.buf = append(q.buf, i)
		i = q.nodes[i].next
	}
	for k := len(q.buf) - 1; k > 0; k-- {
		j := rng.Intn(k + 1)
		q.buf[k], q.buf[j] = q.buf[j], q.buf[k]
	}
	for _, idx := range q.buf {
		q.nodes[idx].next = unlinked
		q.nodes[idx].prev = unlinked
	}
	q.head = unlinked
	q.count = 0

	last := len(q.buf) - 1
	q.insertTail(q.buf[last])
	for k := last - 1; k >= 0; k-- {
		q.insertTail(q.buf[k])
	}
}

// Contains reports whether v is queued.
func (q *Queue[T]) Contains(v T) bool {
	i, ok := q.slot(v)
	return ok && q.nodes[i].next != unlinked
}

func (q *Queue[T]) Count() int { return q.count }

// Capacity is the number of slots the arena holds.
func (q *Queue[T]) Capacity() int { return len(q.nodes) }

// Clear unlinks everything.
func (q *Queue[T]) Clear() {
	for q.head != unlinked {
		q.unlink(q.head)
	}
}

// Each visits queued values from head to tail.
func (q *Queue[T]) Each(fn func(T)) {
	i := q.head
	for range q.count {
		fn(q.nodes[i].value)
		i = q.nodes[i].next
	}
}

func (q *Queue[T]) slot(v T) (int32, bool) {
	s := v.Slot()
	if s < 0 || s >= len(q.nodes) {
		return 0, false
	}
	return int32(s), true
}

// insertTail links an unlinked node before head, or makes it the head of an
// empty list.
func (q *Queue[T]) insertTail(i int32) {
	n := &q.nodes[i]
	if q.head == unlinked {
		n.next, n.prev = i, i
		q.head = i
		q.count = 1
		return
	}
	h := &q.nodes[q.head]
	tail := h.prev
	n.prev = tail
	n.next = q.head
	q.nodes[tail].next = i
	h.prev = i
	q.count++
}

func (q *Queue[T]) unlink(i int32) {
	n := &q.nodes[i]
	if q.count == 1 {
		q.head = unlinked
	} else {
		q.nodes[n.prev].next = n.next
		q.nodes[n.next].prev = n.prev
		if q.head == i {
			q.head = n.next
		}
	}
	n.next, n.prev = unlinked, unlinked
	q.count--
}
