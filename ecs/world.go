package ecs

// EventSink receives every event produced during a tick once all systems
// have run.
type EventSink interface {
	Consume(tick uint64, events []Event)
}

// SinkFunc adapts a function into an EventSink.
type SinkFunc func(tick uint64, events []Event)

func (f SinkFunc) Consume(tick uint64, events []Event) { f(tick, events) }

// World owns entity handles, the event queue and the system order. It is
// driven by a single goroutine.
type World struct {
	entities  Registry
	scheduler *Scheduler
	events    EventQueue
	sinks     []EventSink

	dt      float64
	elapsed float64
	tick    uint64
}

// NewWorld creates a world running systems in the given order.
func NewWorld(systems ...System) *World {
	return &World{scheduler: NewScheduler(systems...)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.Create()
}

// DestroyEntity retires an entity handle.
func (w *World) DestroyEntity(e Entity) bool {
	return w.entities.Destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.IsAlive(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

// AddSink registers an event consumer.
func (w *World) AddSink(s EventSink) {
	if s == nil {
		return
	}
	w.sinks = append(w.sinks, s)
}

// Events is the queue systems and agents push notifications to.
func (w *World) Events() *EventQueue {
	return &w.events
}

// Update runs one tick: every system in order, then every sink with the
// events produced during the tick.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.tick++
	w.dt = dt
	w.elapsed += dt
	w.scheduler.Update(w)

	if len(w.sinks) == 0 {
		w.events.flush()
		return
	}
	events := w.events.Drain()
	if len(events) == 0 {
		return
	}
	for _, sink := range w.sinks {
		sink.Consume(w.tick, events)
	}
}

// DeltaTime is the dt of the tick being processed.
func (w *World) DeltaTime() float64 { return w.dt }

// Elapsed is the total simulated time.
func (w *World) Elapsed() float64 { return w.elapsed }

// Tick is the number of the tick being processed, starting at 1.
func (w *World) Tick() uint64 { return w.tick }
