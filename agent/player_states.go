package agent

import (
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/fsm"
)

var (
	playerStateFree   fsm.State[*Player] = playerFreeState{}
	playerStateAction fsm.State[*Player] = playerActionState{}
	playerStateDead   fsm.State[*Player] = playerDeadState{}
)

type playerFreeState struct{}

type playerActionState struct{}

type playerDeadState struct{}

func (playerFreeState) Name() string    { return "free" }
func (playerFreeState) Enter(p *Player) {}
func (playerFreeState) Exit(p *Player)  {}
func (playerFreeState) Invoke(p *Player) {
	p.move()
	if p.input.Attack {
		p.tryAttack()
	}
}

func (playerActionState) Name() string    { return "action" }
func (playerActionState) Enter(p *Player) {}
func (playerActionState) Exit(p *Player) {
	if p.ctrl.IsActioning() {
		p.ctrl.RawCancel()
	}
}
func (playerActionState) Invoke(p *Player) {}

func (playerDeadState) Name() string { return "dead" }
func (playerDeadState) Enter(p *Player) {
	p.ctrl.RawCancel()
	p.emit(ecs.EventDied, nil)
}
func (playerDeadState) Exit(p *Player)   {}
func (playerDeadState) Invoke(p *Player) {}
