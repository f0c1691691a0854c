package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			for _, e := range ents {
				require.True(t, e.Valid())
				require.True(t, w.IsAlive(e))
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			require.True(t, w.DestroyEntity(dead))
			assert.False(t, w.IsAlive(dead))
			assert.False(t, w.DestroyEntity(dead), "double destroy")

			reused := w.CreateEntity()
			assert.Equal(t, dead.Index(), reused.Index())
			assert.NotEqual(t, dead, reused)
			assert.False(t, w.IsAlive(dead), "stale handle stays dead")
		})
	}
}

func TestWorldRunsSystemsInOrderThenSinks(t *testing.T) {
	var trace []string
	w := NewWorld(
		SystemFunc(func(w *World) {
			trace = append(trace, "a")
			w.Events().Push(Event{Type: EventHit})
		}),
		SystemFunc(func(w *World) { trace = append(trace, "b") }),
	)
	var got []Event
	w.AddSink(SinkFunc(func(tick uint64, events []Event) {
		trace = append(trace, "sink")
		assert.Equal(t, uint64(1), tick)
		got = append(got, events...)
	}))

	w.Update(0.5)

	assert.Equal(t, []string{"a", "b", "sink"}, trace)
	require.Len(t, got, 1)
	assert.Equal(t, EventHit, got[0].Type)
	assert.Equal(t, 0, w.Events().Len())
	assert.InDelta(t, 0.5, w.Elapsed(), 1e-9)
}

func TestWorldWithoutSinksDropsEvents(t *testing.T) {
	w := NewWorld(SystemFunc(func(w *World) {
		w.Events().Push(Event{Type: EventSpawned})
	}))
	w.Update(1)
	assert.Equal(t, 0, w.Events().Len())
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	assert.Nil(t, q.Drain())
	q.Push(Event{Type: EventDied})
	q.Push(Event{Type: EventSpawned})
	out := q.Drain()
	require.Len(t, out, 2)
	assert.Equal(t, EventDied, out[0].Type)
	assert.Nil(t, q.Drain())
}
