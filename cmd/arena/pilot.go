package main

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/timer"
)

const (
	// guardRadius is how far the player strays from the payload when idle.
	guardRadius = 2.5
	// huntRadius is how far around the payload the player looks for enemies.
	huntRadius = 10.0
	reviveTime = 3.0
)

// pilot drives the player: it hunts the enemy nearest the payload, attacks
// when in reach and otherwise returns to guard the payload.
type pilot struct {
	player  *agent.Player
	payload *agent.Payload
	space   entity.SpatialQuery
	reach   func() float64
	revive  timer.Timer
	buf     []entity.Entity
}

func newPilot(p *agent.Player, payload *agent.Payload, space entity.SpatialQuery, reach func() float64) *pilot {
	return &pilot{
		player:  p,
		payload: payload,
		space:   space,
		reach:   reach,
		revive:  timer.New(reviveTime),
	}
}

// Update implements ecs.System and must run before the agent system.
func (p *pilot) Update(w *ecs.World) {
	p.step(w.DeltaTime())
}

func (p *pilot) step(dt float64) {
	if p.player.State() == agent.PlayerDead {
		p.revive.Tick(dt)
		if p.revive.Reached() {
			p.revive.Reset()
			p.player.Revive()
		}
		return
	}

	target := p.nearestEnemy()
	if target == nil {
		p.player.SetInput(agent.Input{Move: p.toward(p.payload.Position(), guardRadius)})
		return
	}

	pos := p.player.Position()
	gap := pos.Distance(target.Position()) - p.player.TargetRadius() - target.TargetRadius()
	if gap <= p.reach() {
		p.player.SetInput(agent.Input{Move: target.Position().Sub(pos), Attack: true, LockOn: target})
		return
	}
	p.player.SetInput(agent.Input{Move: p.toward(target.Position(), 0)})
}

func (p *pilot) nearestEnemy() entity.Entity {
	p.buf = p.space.Overlap(p.payload.Position(), huntRadius, entity.LayerEnemy, p.buf[:0])
	var (
		best entity.Entity
		dist = math.Inf(1)
	)
	from := p.player.Position()
	for _, e := range p.buf {
		if !e.Active() || e.Stats().IsDead() {
			continue
		}
		if d := from.DistanceSq(e.Position()); d < dist {
			best, dist = e, d
		}
	}
	return best
}

// toward returns a unit move at point, or zero once within slack of it.
func (p *pilot) toward(point cp.Vector, slack float64) cp.Vector {
	delta := point.Sub(p.player.Position())
	if delta.Length() <= math.Max(slack, 0.05) {
		return cp.Vector{}
	}
	return delta.Normalize()
}
