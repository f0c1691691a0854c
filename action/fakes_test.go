package action

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

type fakeAgent struct {
	id       ecs.Entity
	team     entity.Team
	pos      cp.Vector
	heading  cp.Vector
	radius   float64
	stats    entity.Stats
	moves    []cp.Vector
	elevated []float64
	hits     []entity.Entity
	trace    []string

	ctrl           *Controller
	actioningAtEnd []bool
}

func newFakeAgent(id ecs.Entity, team entity.Team) *fakeAgent {
	return &fakeAgent{id: id, team: team, heading: cp.Vector{X: 1}, radius: 0.5, stats: entity.DefaultStats()}
}

func (f *fakeAgent) ID() ecs.Entity           { return f.id }
func (f *fakeAgent) Name() string             { return "fake" }
func (f *fakeAgent) Position() cp.Vector      { return f.pos }
func (f *fakeAgent) Heading() cp.Vector       { return f.heading }
func (f *fakeAgent) ActionHeading() cp.Vector { return f.heading }
func (f *fakeAgent) Team() entity.Team        { return f.team }
func (f *fakeAgent) TargetRadius() float64    { return f.radius }
func (f *fakeAgent) Stats() *entity.Stats     { return &f.stats }
func (f *fakeAgent) Active() bool             { return true }

func (f *fakeAgent) ReceiveHit(attacker entity.Entity) {
	f.hits = append(f.hits, attacker)
}

func (f *fakeAgent) ForceMovement(move cp.Vector) {
	f.moves = append(f.moves, move)
}

func (f *fakeAgent) SetElevation(h float64) {
	f.elevated = append(f.elevated, h)
}

func (f *fakeAgent) BeginAction(m *MoveAction) {
	f.trace = append(f.trace, "begin "+m.Name())
}

func (f *fakeAgent) EndAction(m *MoveAction) {
	f.trace = append(f.trace, "end "+m.Name())
	if f.ctrl != nil {
		f.actioningAtEnd = append(f.actioningAtEnd, f.ctrl.IsActioning())
	}
}

func (f *fakeAgent) SwitchAction(prev, next *MoveAction) {
	f.trace = append(f.trace, "switch "+prev.Name()+"->"+next.Name())
}

type fakeQuery struct {
	found []entity.Entity
	calls int
}

func (q *fakeQuery) Overlap(center cp.Vector, radius float64, mask entity.Layer, out []entity.Entity) []entity.Entity {
	q.calls++
	return append(out, q.found...)
}

func testAttack(name string) *AttackSettings {
	cfg := DefaultAttackSettings()
	cfg.Name = name
	return &cfg
}

func testSettings(name string, duration, speed float64) *Settings {
	cfg := DefaultSettings()
	cfg.Name = name
	cfg.MoveTime = duration
	cfg.Animation.DriveValue = speed
	return &cfg
}
