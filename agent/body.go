// Package agent implements the arena's actors: AI enemies, the player and
// the payload they fight over.
package agent

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/action"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

// Body is the pose and combat block shared by every actor. It implements
// most of entity.Entity and action.Actionable, and turns animation requests
// and action notifications into events.
type Body struct {
	id     ecs.Entity
	name   string
	team   entity.Team
	layer  entity.Layer
	events *ecs.EventQueue

	pos       cp.Vector
	heading   cp.Vector
	radius    float64
	speed     float64
	elevation float64
	dt        float64
	stats     entity.Stats
	active    bool
}

func newBody(id ecs.Entity, name string, team entity.Team, layer entity.Layer, events *ecs.EventQueue) Body {
	return Body{
		id:      id,
		name:    name,
		team:    team,
		layer:   layer,
		events:  events,
		heading: cp.Vector{X: 1},
		active:  true,
	}
}

func (b *Body) ID() ecs.Entity          { return b.id }
func (b *Body) Name() string            { return b.name }
func (b *Body) Team() entity.Team       { return b.team }
func (b *Body) Layer() entity.Layer     { return b.layer }
func (b *Body) Position() cp.Vector     { return b.pos }
func (b *Body) Heading() cp.Vector      { return b.heading }
func (b *Body) TargetRadius() float64   { return b.radius }
func (b *Body) Stats() *entity.Stats    { return &b.stats }
func (b *Body) Active() bool            { return b.active }
func (b *Body) Elevation() float64      { return b.elevation }
func (b *Body) SetElevation(h float64)  { b.elevation = h }
func (b *Body) SetPosition(p cp.Vector) { b.pos = p }

// ActionHeading is the direction actions launch along.
func (b *Body) ActionHeading() cp.Vector { return b.heading }

// SetHeading turns the body. Zero vectors are ignored.
func (b *Body) SetHeading(h cp.Vector) {
	if h.LengthSq() == 0 {
		return
	}
	b.heading = h.Normalize()
}

// ForceMovement moves the body by move scaled to its speed over the current
// tick.
func (b *Body) ForceMovement(move cp.Vector) {
	b.pos = b.pos.Add(move.Mult(b.speed * b.dt))
}

// Play implements entity.Animator.
func (b *Body) Play(clip string, blend float64) {
	b.emit(ecs.EventAnimation, ecs.AnimationEvent{Clip: clip, Blend: blend})
}

// SetFloat implements entity.Animator.
func (b *Body) SetFloat(parameter string, value float64) {
	b.emit(ecs.EventAnimation, ecs.AnimationEvent{Parameter: parameter, Value: value})
}

func (b *Body) face(point cp.Vector) {
	b.SetHeading(point.Sub(b.pos))
}

func (b *Body) emit(typ ecs.EventType, data any) {
	b.events.Push(ecs.Event{Type: typ, Entity: b.id, Data: data})
}

// observe reports a controller's lifecycle as events.
func (b *Body) observe(c *action.Controller) {
	c.OnBegin = func(m *action.MoveAction, target entity.Entity) {
		evt := ecs.ActionEvent{Action: m.Name()}
		if target != nil {
			evt.Target = target.ID()
		}
		b.emit(ecs.EventActionBegan, evt)
	}
	c.OnEnd = func(m *action.MoveAction) {
		b.emit(ecs.EventActionEnded, ecs.ActionEvent{Action: m.Name()})
	}
	c.OnCancel = func(m *action.MoveAction) {
		b.emit(ecs.EventActionCanceled, ecs.ActionEvent{Action: m.Name()})
	}
}

// receiveDamage applies an attacker's strength and reports the hit.
func (b *Body) receiveDamage(attacker entity.Entity) {
	damage := b.stats.ReceiveDamage(attacker.Stats().AttackStrength())
	b.emit(ecs.EventHit, ecs.HitEvent{
		Attacker: attacker.ID(),
		Damage:   damage,
		Health:   b.stats.CurrentHealth,
	})
}
