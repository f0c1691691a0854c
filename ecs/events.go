package ecs

// EventType names a combat notification.
type EventType string

const (
	EventActionBegan    EventType = "action_began"
	EventActionEnded    EventType = "action_ended"
	EventActionCanceled EventType = "action_canceled"
	EventAnimation      EventType = "animation"
	EventAttackGranted  EventType = "attack_granted"
	EventHit            EventType = "hit"
	EventDied           EventType = "died"
	EventSpawned        EventType = "spawned"
	EventDespawned      EventType = "despawned"
)

// Event is a notification produced during a tick and handed to sinks after
// every system has run.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// ActionEvent accompanies the action_* events.
type ActionEvent struct {
	Action string
	Target Entity
}

// AnimationEvent asks the presentation layer to play a clip.
type AnimationEvent struct {
	Clip      string
	Blend     float64
	Parameter string
	Value     float64
}

// HitEvent is pushed by the receiver of a hit.
type HitEvent struct {
	Attacker Entity
	Damage   float64
	Health   float64
}

// SpawnEvent carries where an agent entered the arena.
type SpawnEvent struct {
	X, Y float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len is the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
