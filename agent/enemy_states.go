package agent

import (
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/fsm"
	"github.com/milk9111/melee/timer"
)

// Enemy state singletons, indexed by EnemyState.
var (
	enemyStateIdle   fsm.State[*Enemy] = enemyIdleState{}
	enemyStateChase  fsm.State[*Enemy] = enemyChaseState{}
	enemyStateAction fsm.State[*Enemy] = enemyActionState{}
	enemyStateDead   fsm.State[*Enemy] = enemyDeadState{}
)

type enemyIdleState struct{}

type enemyChaseState struct{}

type enemyActionState struct{}

type enemyDeadState struct{}

func (enemyIdleState) Name() string { return "idle" }
func (enemyIdleState) Enter(e *Enemy) {
	e.RevokeAttack()
}
func (enemyIdleState) Exit(e *Enemy) {}
func (enemyIdleState) Invoke(e *Enemy) {
	if e.threat.Target() != nil {
		e.fsm.ChangeTo(EnemyChase)
	}
}

func (enemyChaseState) Name() string { return "chase" }
func (enemyChaseState) Enter(e *Enemy) {
	if target := e.threat.Target(); target != nil {
		e.goal = target.Position()
	}
}
func (enemyChaseState) Exit(e *Enemy) {}
func (enemyChaseState) Invoke(e *Enemy) {
	target := e.threat.Target()
	if target == nil || !target.Active() {
		e.fsm.ChangeTo(EnemyIdle)
		return
	}
	e.retarget(target)
	e.face(target.Position())
	e.hold = false
	e.think()
	if !e.hold {
		e.approach(target)
	}
}

func (enemyActionState) Name() string   { return "action" }
func (enemyActionState) Enter(e *Enemy) {}
func (enemyActionState) Exit(e *Enemy) {
	if e.ctrl.IsActioning() {
		e.ctrl.RawCancel()
	}
}
func (enemyActionState) Invoke(e *Enemy) {}

func (enemyDeadState) Name() string { return "dead" }
func (enemyDeadState) Enter(e *Enemy) {
	e.ctrl.RawCancel()
	e.RevokeAttack()
	e.dead = timer.New(e.cfg.DeadTime)
	e.emit(ecs.EventDied, nil)
}
func (enemyDeadState) Exit(e *Enemy) {}
func (enemyDeadState) Invoke(e *Enemy) {
	e.dead.Tick(e.dt)
	if !e.dead.Reached() {
		return
	}
	if e.deps.Coordinator != nil {
		e.deps.Coordinator.DespawnEnemy(e)
	}
}
