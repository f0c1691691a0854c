package agent

import (
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

// Payload is the passive objective enemies always hold a grudge against.
type Payload struct {
	Body
}

func NewPayload(id ecs.Entity, cfg PayloadSettings, events *ecs.EventQueue) *Payload {
	p := &Payload{Body: newBody(id, cfg.Name, entity.TeamPlayer, entity.LayerPayload, events)}
	p.radius = cfg.Radius
	p.stats = cfg.Stats
	return p
}

func (p *Payload) ReceiveHit(attacker entity.Entity) {
	if attacker == nil || p.stats.IsDead() {
		return
	}
	p.receiveDamage(attacker)
	if p.stats.IsDead() {
		p.emit(ecs.EventDied, nil)
	}
}
