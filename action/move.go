package action

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/entity"
)

// Kind selects the behaviour of a MoveAction.
type Kind int

const (
	KindStraightAttack Kind = iota
	KindLockOnAttack
	KindHurt
	KindSpawn
)

func (k Kind) String() string {
	switch k {
	case KindStraightAttack:
		return "straight_attack"
	case KindLockOnAttack:
		return "lock_on_attack"
	case KindHurt:
		return "hurt"
	case KindSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Actionable is the agent side of an action: it supplies the pose actions
// read and applies the movement they produce.
type Actionable interface {
	Position() cp.Vector
	ActionHeading() cp.Vector
	// ForceMovement applies a movement intent whose length is at most the
	// agent's full speed for this tick.
	ForceMovement(move cp.Vector)
	BeginAction(m *MoveAction)
	EndAction(m *MoveAction)
	SwitchAction(prev, next *MoveAction)
}

// Elevator is implemented by agents that render a vertical offset, used by
// the spawn rise.
type Elevator interface {
	SetElevation(h float64)
}

// MoveAction is a timed action built once per ability and reused for every
// use. Its behaviour is selected by Kind.
type MoveAction struct {
	Kind Kind

	settings *Settings
	attack   *AttackSettings
	window   HitWindow
	query    entity.SpatialQuery

	direction cp.Vector
	target    entity.Entity
}

// NewStraightAttack lunges along the agent's heading at begin.
func NewStraightAttack(cfg *AttackSettings, hb *Hitbox, q entity.SpatialQuery) *MoveAction {
	return newAttack(KindStraightAttack, cfg, hb, q)
}

// NewLockOnAttack closes the distance to the target's surface.
func NewLockOnAttack(cfg *AttackSettings, hb *Hitbox, q entity.SpatialQuery) *MoveAction {
	return newAttack(KindLockOnAttack, cfg, hb, q)
}

func newAttack(kind Kind, cfg *AttackSettings, hb *Hitbox, q entity.SpatialQuery) *MoveAction {
	m := &MoveAction{Kind: kind, attack: cfg, window: NewHitWindow(hb), query: q}
	if cfg != nil {
		m.settings = &cfg.Settings
	}
	return m
}

// NewHurt knocks the agent away from its attacker.
func NewHurt(cfg *Settings) *MoveAction {
	return &MoveAction{Kind: KindHurt, settings: cfg}
}

// NewSpawn raises the agent out of the ground.
func NewSpawn(cfg *Settings) *MoveAction {
	return &MoveAction{Kind: KindSpawn, settings: cfg}
}

func (m *MoveAction) Name() string {
	if m.settings != nil && m.settings.Name != "" {
		return m.settings.Name
	}
	return m.Kind.String()
}

func (m *MoveAction) Settings() *Settings { return m.settings }

// Attack returns the attack tuning, or nil for non-attack kinds.
func (m *MoveAction) Attack() *AttackSettings { return m.attack }

func (m *MoveAction) Target() entity.Entity { return m.target }

func (m *MoveAction) Direction() cp.Vector { return m.direction }

func (m *MoveAction) Window() *HitWindow { return &m.window }

// Duration is the action's length in action time.
func (m *MoveAction) Duration() float64 {
	if m.settings == nil {
		return 0
	}
	return m.settings.MoveTime
}

// TimeSpeed scales how fast action time passes relative to world time.
func (m *MoveAction) TimeSpeed() float64 {
	if m.settings == nil {
		return 1
	}
	return m.settings.timeSpeed()
}

// Reach is how close an agent must be to its target to start this action.
func (m *MoveAction) Reach() float64 {
	if m.attack == nil {
		return 0
	}
	return m.attack.AttackDistance
}

// Animate triggers the action's clip on an.
func (m *MoveAction) Animate(an entity.Animator) {
	if an == nil || m.settings == nil {
		return
	}
	anim := m.settings.Animation
	if anim.DriveParameter != "" {
		an.SetFloat(anim.DriveParameter, m.TimeSpeed())
	}
	if anim.Clip != "" {
		an.Play(anim.Clip, anim.Transition)
	}
}

// Begin captures everything the action needs from the agent and target.
func (m *MoveAction) Begin(a Actionable, target entity.Entity) {
	m.target = target
	switch m.Kind {
	case KindStraightAttack:
		m.direction = unit(a.ActionHeading())
		m.window.Reset()
	case KindLockOnAttack:
		m.direction = unit(a.ActionHeading())
		m.window.Reset()
	case KindHurt:
		m.direction = unit(a.ActionHeading())
		if target != nil {
			if to := target.Position().Sub(a.Position()); to.LengthSq() > 0 {
				m.direction = to.Normalize()
			}
		}
	case KindSpawn:
		setElevation(a, -m.velocity(1))
	}
}

// Perform applies the action at normalized progress t.
func (m *MoveAction) Perform(a Actionable, t float64) {
	switch m.Kind {
	case KindStraightAttack:
		a.ForceMovement(m.direction.Clamp(m.velocity(t)))
		m.tickWindow(t)
	case KindLockOnAttack:
		a.ForceMovement(m.lockOnOffset(a).Clamp(m.velocity(t)))
		m.tickWindow(t)
	case KindHurt:
		a.ForceMovement(m.direction.Neg().Clamp(m.velocity(t)))
	case KindSpawn:
		setElevation(a, -m.velocity(1-t))
	}
}

// End runs when the action completes naturally.
func (m *MoveAction) End(a Actionable) {
	switch m.Kind {
	case KindStraightAttack, KindLockOnAttack:
		m.window.Cancel()
	case KindSpawn:
		setElevation(a, 0)
	}
	m.target = nil
}

// Cancel runs when the action is interrupted. Hitboxes are forced off.
func (m *MoveAction) Cancel(a Actionable) {
	switch m.Kind {
	case KindStraightAttack, KindLockOnAttack:
		m.window.Cancel()
	case KindSpawn:
		setElevation(a, 0)
	}
	m.target = nil
}

// Destination is where a lock-on attack is heading: the point on the
// target's surface facing the agent.
func (m *MoveAction) Destination(a Actionable) cp.Vector {
	return a.Position().Add(m.lockOnOffset(a))
}

func (m *MoveAction) lockOnOffset(a Actionable) cp.Vector {
	if m.target == nil {
		return m.direction
	}
	origin := a.Position()
	targetPos := m.target.Position()
	to := targetPos.Sub(origin)
	if to.LengthSq() == 0 {
		return cp.Vector{}
	}
	dest := targetPos.Sub(to.Normalize().Mult(m.target.TargetRadius()))
	return dest.Sub(origin)
}

func (m *MoveAction) tickWindow(t float64) {
	m.window.Tick(m.attack.Window(), t)
	if hb := m.window.Hitbox(); hb.Active() {
		hb.Sweep(m.query)
	}
}

func (m *MoveAction) velocity(t float64) float64 {
	if m.settings == nil {
		return 0
	}
	return m.settings.VelocityCurve.Evaluate(common.Clamp01(t))
}

func setElevation(a Actionable, h float64) {
	if e, ok := a.(Elevator); ok {
		e.SetElevation(h)
	}
}

func unit(v cp.Vector) cp.Vector {
	if v.LengthSq() == 0 {
		return cp.Vector{}
	}
	return v.Normalize()
}
