package agent

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/rs/zerolog"
)

type fakeCoordinator struct {
	queued    map[*Enemy]bool
	requests  int
	despawned []*Enemy
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{queued: make(map[*Enemy]bool)}
}

func (c *fakeCoordinator) RequestAttack(e *Enemy) {
	c.requests++
	c.queued[e] = true
}

func (c *fakeCoordinator) RevokeAttack(e *Enemy) {
	delete(c.queued, e)
}

func (c *fakeCoordinator) DespawnEnemy(e *Enemy) {
	c.despawned = append(c.despawned, e)
	e.Deactivate()
}

type layered interface {
	Layer() entity.Layer
}

// bruteQuery checks every registered entity against the query circle.
type bruteQuery struct {
	all []entity.Entity
}

func (q *bruteQuery) Overlap(center cp.Vector, radius float64, mask entity.Layer, out []entity.Entity) []entity.Entity {
	for _, e := range q.all {
		if !e.Active() {
			continue
		}
		if l, ok := e.(layered); ok && !mask.Has(l.Layer()) {
			continue
		}
		if center.Distance(e.Position()) <= radius+e.TargetRadius() {
			out = append(out, e)
		}
	}
	return out
}

type testRig struct {
	events *ecs.EventQueue
	coord  *fakeCoordinator
	query  *bruteQuery
	logger zerolog.Logger
	reg    ecs.Registry
}

func newTestRig() *testRig {
	return &testRig{
		events: &ecs.EventQueue{},
		coord:  newFakeCoordinator(),
		query:  &bruteQuery{},
		logger: zerolog.Nop(),
	}
}

func (r *testRig) enemy(cfg *EnemySettings, brain Brain) *Enemy {
	e := NewEnemy(r.reg.Create(), 0, cfg, EnemyDeps{
		Coordinator: r.coord,
		Space:       r.query,
		Events:      r.events,
		Brain:       brain,
		Logger:      r.logger,
	})
	e.Activate()
	e.StopDoingAnything()
	r.query.all = append(r.query.all, e)
	return e
}

func (r *testRig) payload(pos cp.Vector) *Payload {
	p := NewPayload(r.reg.Create(), DefaultPayloadSettings(), r.events)
	p.SetPosition(pos)
	r.query.all = append(r.query.all, p)
	return p
}

func (r *testRig) player(pos cp.Vector) *Player {
	cfg := DefaultPlayerSettings()
	p := NewPlayer(r.reg.Create(), &cfg, r.query, r.events)
	p.SetPosition(pos)
	r.query.all = append(r.query.all, p)
	return p
}

func (r *testRig) eventTypes() []ecs.EventType {
	var out []ecs.EventType
	for _, evt := range r.events.Drain() {
		out = append(out, evt.Type)
	}
	return out
}
