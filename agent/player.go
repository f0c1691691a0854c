package agent

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/action"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/fsm"
)

type PlayerState int

const (
	PlayerFree PlayerState = iota
	PlayerAction
	PlayerDead
)

// Input is one tick of player intent.
type Input struct {
	Move   cp.Vector
	Attack bool
	// LockOn, when set and active, turns an attack into a lunge at it.
	LockOn entity.Entity
}

// Player is the controllable character.
type Player struct {
	Body

	cfg    *PlayerSettings
	fsm    *fsm.Machine[*Player, PlayerState]
	ctrl   *action.Controller
	attack *action.MoveAction
	lockOn *action.MoveAction
	hurt   *action.MoveAction
	input  Input
}

func NewPlayer(id ecs.Entity, cfg *PlayerSettings, space entity.SpatialQuery, events *ecs.EventQueue) *Player {
	p := &Player{cfg: cfg}
	p.Body = newBody(id, cfg.Name, entity.TeamPlayer, entity.LayerPlayer, events)
	p.radius = cfg.Radius
	p.speed = cfg.Speed
	p.stats = cfg.Stats
	p.ctrl = action.NewController(p)
	p.observe(p.ctrl)
	p.attack = action.NewStraightAttack(&cfg.Attack,
		action.NewHitbox(p, cfg.Attack.HitRadius, cfg.Attack.HitReach, cfg.HitMask), space)
	p.lockOn = action.NewLockOnAttack(&cfg.LockOn,
		action.NewHitbox(p, cfg.LockOn.HitRadius, cfg.LockOn.HitReach, cfg.HitMask), space)
	p.hurt = action.NewHurt(&cfg.Hurt)
	p.fsm = fsm.New[*Player, PlayerState](p,
		playerStateFree,
		playerStateAction,
		playerStateDead,
	)
	p.fsm.Init(PlayerFree)
	return p
}

func (p *Player) Controller() *action.Controller { return p.ctrl }
func (p *Player) State() PlayerState             { return p.fsm.Current() }

// SetInput replaces the intent consumed by the next Tick.
func (p *Player) SetInput(in Input) {
	p.input = in
}

func (p *Player) Tick(dt float64) {
	p.dt = dt
	p.fsm.Invoke()
	p.input.Attack = false
}

func (p *Player) ReceiveHit(attacker entity.Entity) {
	if !p.active || attacker == nil || p.fsm.Is(PlayerDead) {
		return
	}
	p.receiveDamage(attacker)
	if p.stats.IsDead() {
		p.fsm.ChangeTo(PlayerDead)
		return
	}
	p.ctrl.ForceBegin(p.hurt, attacker)
}

// Revive restores a dead player to full health.
func (p *Player) Revive() {
	p.stats.HealToFull()
	p.fsm.ChangeTo(PlayerFree)
}

func (p *Player) BeginAction(m *action.MoveAction) {
	m.Animate(&p.Body)
	if p.fsm.Is(PlayerAction) || p.fsm.Is(PlayerDead) {
		return
	}
	p.fsm.ChangeTo(PlayerAction)
}

func (p *Player) EndAction(*action.MoveAction) {
	if p.fsm.Is(PlayerDead) {
		return
	}
	p.fsm.ChangeTo(PlayerFree)
}

func (p *Player) SwitchAction(prev, next *action.MoveAction) {}

func (p *Player) move() {
	move := p.input.Move.Clamp(1)
	if move.LengthSq() == 0 {
		return
	}
	p.SetHeading(move)
	p.ForceMovement(move)
}

func (p *Player) tryAttack() {
	if lock := p.input.LockOn; lock != nil && lock.Active() {
		p.face(lock.Position())
		p.ctrl.TryBegin(p.lockOn, lock)
		return
	}
	p.ctrl.TryBegin(p.attack, nil)
}
