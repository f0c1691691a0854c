package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	slot   int
	active bool
	uses   int
}

func (i *item) Slot() int { return i.slot }

func newPool(capacity int, created *int) *Pool[*item] {
	return New(capacity, Hooks[*item]{
		Instantiate: func(slot int) *item {
			*created++
			return &item{slot: slot}
		},
		Activate: func(i *item) {
			i.active = true
			i.uses++
		},
		Deactivate: func(i *item) { i.active = false },
	})
}

func TestActivateUpToCapacity(t *testing.T) {
	created := 0
	p := newPool(2, &created)

	a, ok := p.ActivateNext()
	require.True(t, ok)
	b, ok := p.ActivateNext()
	require.True(t, ok)
	assert.NotEqual(t, a.Slot(), b.Slot())

	_, ok = p.ActivateNext()
	assert.False(t, ok, "pool never grows")
	_, err := p.Acquire()
	assert.ErrorIs(t, err, ErrExhausted)

	assert.Equal(t, 2, p.Active())
	assert.Equal(t, 2, created)
}

func TestDeactivateReusesInstance(t *testing.T) {
	created := 0
	p := newPool(1, &created)

	a, _ := p.ActivateNext()
	require.True(t, p.Deactivate(a))
	assert.False(t, a.active)
	assert.False(t, p.Deactivate(a), "already parked")

	b, ok := p.ActivateNext()
	require.True(t, ok)
	assert.Same(t, a, b)
	assert.Equal(t, 2, b.uses)
	assert.Equal(t, 1, created)
}

func TestEachVisitsActiveOnly(t *testing.T) {
	created := 0
	p := newPool(3, &created)
	a, _ := p.ActivateNext()
	b, _ := p.ActivateNext()
	c, _ := p.ActivateNext()
	p.Deactivate(b)

	got := p.Snapshot(nil)
	assert.Equal(t, []*item{a, c}, got)
	assert.True(t, p.IsActive(c.Slot()))
	assert.False(t, p.IsActive(b.Slot()))
	assert.Equal(t, 3, p.Capacity())
}

func TestZeroCapacity(t *testing.T) {
	created := 0
	p := newPool(0, &created)
	_, ok := p.ActivateNext()
	assert.False(t, ok)
	assert.Equal(t, 0, created)
}
