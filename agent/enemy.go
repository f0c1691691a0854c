package agent

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/action"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/fsm"
	"github.com/milk9111/melee/threat"
	"github.com/milk9111/melee/timer"
	"github.com/rs/zerolog"
)

type EnemyState int

const (
	EnemyIdle EnemyState = iota
	EnemyChase
	EnemyAction
	EnemyDead
)

// Coordinator grants attacks and owns enemy lifetimes.
type Coordinator interface {
	RequestAttack(e *Enemy)
	RevokeAttack(e *Enemy)
	DespawnEnemy(e *Enemy)
}

// Brain decides, once per chase tick, whether an enemy wants to attack.
type Brain interface {
	Decide(h BrainHost) error
}

// BrainHost is what a Brain may observe and command.
type BrainHost interface {
	Name() string
	HasTarget() bool
	TargetDistance() float64
	AttackRange() float64
	AttackReady() bool
	HealthRatio() float64
	RequestAttack()
	RevokeAttack()
	// Hold stops the enemy closing distance for the current tick.
	Hold()
}

type EnemyDeps struct {
	Coordinator Coordinator
	Space       entity.SpatialQuery
	Events      *ecs.EventQueue
	Brain       Brain
	Logger      zerolog.Logger
}

// Enemy is a pooled AI agent. Its behaviour is a small state machine that
// chases the top of its threat table and asks the coordinator for
// permission before attacking.
type Enemy struct {
	Body

	slot int
	cfg  *EnemySettings
	deps EnemyDeps

	fsm    *fsm.Machine[*Enemy, EnemyState]
	ctrl   *action.Controller
	threat *threat.Table
	hitbox *action.Hitbox
	attack *action.MoveAction
	hurt   *action.MoveAction
	spawn  *action.MoveAction
	ready  *timer.Ready
	dead   timer.Timer

	goal cp.Vector
	hold bool
}

// NewEnemy builds a parked enemy for a pool slot. Settings are shared by
// pointer so reloaded tuning reaches every instance.
func NewEnemy(id ecs.Entity, slot int, cfg *EnemySettings, deps EnemyDeps) *Enemy {
	e := &Enemy{
		slot: slot,
		cfg:  cfg,
		deps: deps,
	}
	e.Body = newBody(id, cfg.Name, entity.TeamEnemy, entity.LayerEnemy, deps.Events)
	e.active = false
	e.ctrl = action.NewController(e)
	e.observe(e.ctrl)
	e.hitbox = action.NewHitbox(e, cfg.Attack.HitRadius, cfg.Attack.HitReach, cfg.HitMask)
	e.attack = action.NewStraightAttack(&cfg.Attack, e.hitbox, deps.Space)
	e.hurt = action.NewHurt(&cfg.Hurt)
	e.spawn = action.NewSpawn(&cfg.Spawn)
	e.threat = threat.New(id, cfg.Threat)
	e.ready = timer.NewReady(cfg.Attack.ReadyTime)
	e.fsm = fsm.New[*Enemy, EnemyState](e,
		enemyStateIdle,
		enemyStateChase,
		enemyStateAction,
		enemyStateDead,
	)
	return e
}

func (e *Enemy) Slot() int                      { return e.slot }
func (e *Enemy) Controller() *action.Controller { return e.ctrl }
func (e *Enemy) Threat() *threat.Table          { return e.threat }
func (e *Enemy) Settings() *EnemySettings       { return e.cfg }
func (e *Enemy) State() EnemyState              { return e.fsm.Current() }

// Activate readies a parked enemy for reuse. Settings are re-read so tuning
// changes apply from the next spawn.
func (e *Enemy) Activate() {
	e.active = true
	e.name = e.cfg.Name
	e.radius = e.cfg.Radius
	e.speed = e.cfg.Speed
	e.elevation = 0
	e.stats.CopyFrom(e.cfg.Stats)
	e.hitbox.Radius = e.cfg.Attack.HitRadius
	e.hitbox.Reach = e.cfg.Attack.HitReach
	e.hitbox.Mask = e.cfg.HitMask
	e.threat.SetConfig(e.cfg.Threat)
	e.threat.Clear()
	e.ready.ReadyTime = e.cfg.Attack.ReadyTime
	e.ready.Force()
	e.hold = false
}

// Deactivate parks the enemy. Any running action is cancelled.
func (e *Enemy) Deactivate() {
	e.ctrl.RawCancel()
	e.RevokeAttack()
	e.threat.Clear()
	e.active = false
}

// StopDoingAnything drops the current action and returns to idle.
func (e *Enemy) StopDoingAnything() {
	e.ctrl.RawCancel()
	e.RevokeAttack()
	if !e.fsm.Initialised() {
		e.fsm.Init(EnemyIdle)
		return
	}
	e.fsm.ChangeTo(EnemyIdle)
}

// ForceSpawnAction places the enemy and plays its rise from the ground.
func (e *Enemy) ForceSpawnAction(pos, heading cp.Vector) {
	e.pos = pos
	e.SetHeading(heading)
	e.ctrl.ForceBegin(e.spawn, nil)
}

// Tick runs one step of behaviour.
func (e *Enemy) Tick(dt float64) {
	if !e.active {
		return
	}
	e.dt = dt
	e.ready.Tick(dt)
	if !e.fsm.Is(EnemyDead) {
		e.threat.Update(dt, e.pos, e.deps.Space)
	}
	e.fsm.Invoke()
}

// ReceiveAttackSignal starts the attack the coordinator just granted. It
// reports false when the enemy can no longer use the grant.
func (e *Enemy) ReceiveAttackSignal() bool {
	if !e.active || e.fsm.Is(EnemyDead) || e.ctrl.IsActioning() {
		return false
	}
	target := e.threat.Target()
	if target == nil {
		return false
	}
	e.face(target.Position())
	if !e.ctrl.TryBegin(e.attack, target) {
		return false
	}
	e.ready.Pop()
	return true
}

func (e *Enemy) ReceiveHit(attacker entity.Entity) {
	if !e.active || attacker == nil || e.fsm.Is(EnemyDead) {
		return
	}
	e.receiveDamage(attacker)
	e.threat.AddAggro(attacker, e.cfg.HitAggro)
	e.RevokeAttack()
	if e.stats.IsDead() {
		e.Die()
		return
	}
	e.ctrl.ForceBegin(e.hurt, attacker)
}

// Die kills the enemy outright.
func (e *Enemy) Die() {
	if !e.active || e.fsm.Is(EnemyDead) {
		return
	}
	e.stats.Die()
	e.fsm.ChangeTo(EnemyDead)
}

func (e *Enemy) BeginAction(m *action.MoveAction) {
	m.Animate(&e.Body)
	e.RevokeAttack()
	if e.fsm.Is(EnemyAction) || e.fsm.Is(EnemyDead) {
		return
	}
	e.fsm.ChangeTo(EnemyAction)
}

func (e *Enemy) EndAction(*action.MoveAction) {
	if e.fsm.Is(EnemyDead) {
		return
	}
	if e.threat.Target() != nil {
		e.fsm.ChangeTo(EnemyChase)
		return
	}
	e.fsm.ChangeTo(EnemyIdle)
}

func (e *Enemy) SwitchAction(prev, next *action.MoveAction) {
	e.deps.Logger.Debug().
		Str("enemy", e.name).
		Str("from", prev.Name()).
		Str("to", next.Name()).
		Msg("action interrupted")
}

func (e *Enemy) HasTarget() bool {
	return e.threat.Target() != nil
}

// TargetDistance is the surface gap to the current target.
func (e *Enemy) TargetDistance() float64 {
	target := e.threat.Target()
	if target == nil {
		return math.Inf(1)
	}
	return target.Position().Distance(e.pos) - target.TargetRadius() - e.radius
}

func (e *Enemy) AttackRange() float64 { return e.attack.Reach() }
func (e *Enemy) AttackReady() bool    { return e.ready.IsReady() }
func (e *Enemy) HealthRatio() float64 { return e.stats.HealthRatio() }
func (e *Enemy) Hold()                { e.hold = true }

func (e *Enemy) RequestAttack() {
	if e.deps.Coordinator != nil {
		e.deps.Coordinator.RequestAttack(e)
	}
}

func (e *Enemy) RevokeAttack() {
	if e.deps.Coordinator != nil {
		e.deps.Coordinator.RevokeAttack(e)
	}
}

// decide is the built-in attack policy used when no Brain is attached or
// the attached one fails.
func (e *Enemy) decide() {
	if e.TargetDistance() <= e.AttackRange() {
		if e.AttackReady() {
			e.RequestAttack()
		}
		e.Hold()
		return
	}
	e.RevokeAttack()
}

func (e *Enemy) think() {
	if e.deps.Brain == nil {
		e.decide()
		return
	}
	if err := e.deps.Brain.Decide(e); err != nil {
		e.deps.Logger.Warn().Err(err).Str("enemy", e.name).Msg("brain failed; using default policy")
		e.deps.Brain = nil
		e.decide()
	}
}

// retarget moves the chase goal once the target has drifted far enough.
func (e *Enemy) retarget(target entity.Entity) {
	if target.Position().Distance(e.goal) > e.cfg.RetargetDistance {
		e.goal = target.Position()
	}
}

func (e *Enemy) approach(target entity.Entity) {
	to := e.goal.Sub(e.pos)
	if to.LengthSq() == 0 {
		return
	}
	if to.Length()-target.TargetRadius()-e.radius <= e.cfg.StopDistance {
		return
	}
	e.ForceMovement(to.Normalize())
}
