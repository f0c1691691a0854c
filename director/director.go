// Package director coordinates the enemy population: it pools enemies and
// admits their attacks one at a time.
package director

import (
	"fmt"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/pool"
	"github.com/milk9111/melee/telemetry"
	"github.com/milk9111/melee/timer"
	"github.com/rs/zerolog"
)

const poolName = "enemies"

// Settings tunes the attack gate and the enemy population.
type Settings struct {
	Capacity       int     `yaml:"capacity"`
	AttackInterval float64 `yaml:"attack_interval"`
	// Variance scales AttackInterval by a random draw in [0, 1).
	Variance         common.Curve `yaml:"variance"`
	MinAbsoluteAggro float64      `yaml:"min_absolute_aggro"`
}

func DefaultSettings() Settings {
	return Settings{
		Capacity:         32,
		AttackInterval:   1,
		Variance:         common.Linear(0.5, 1),
		MinAbsoluteAggro: 15,
	}
}

func (s *Settings) Validate() error {
	if s.Capacity <= 0 {
		return fmt.Errorf("director: capacity must be positive, got %d", s.Capacity)
	}
	if s.AttackInterval < 0 {
		return fmt.Errorf("director: attack_interval must not be negative")
	}
	return nil
}

// Space tracks enemies for spatial queries.
type Space interface {
	entity.SpatialQuery
	Track(e entity.Entity, layer entity.Layer)
	Untrack(id ecs.Entity)
}

type Deps struct {
	World   *ecs.World
	Space   Space
	Rand    *rand.Rand
	Metrics *telemetry.Instruments
	Logger  zerolog.Logger
	// Brain, when set, supplies the decision brain for each pool slot.
	Brain func(slot int) agent.Brain
}

// Director owns the enemy population and decides which enemy may attack
// next. Enemies queue a request when they are in range; the director grants
// one request each time its gate timer elapses and then shuffles the rest so
// no enemy can rely on its place in line.
type Director struct {
	cfg   Settings
	enemy *agent.EnemySettings
	deps  Deps
	log   zerolog.Logger

	pool     *pool.Pool[*agent.Enemy]
	queue    *Queue[*agent.Enemy]
	gate     timer.Timer
	absolute entity.Entity
	buf      []*agent.Enemy
}

// New creates a director whose pool builds enemies from enemy. The settings
// pointer is shared with every enemy instance.
func New(cfg Settings, enemy *agent.EnemySettings, deps Deps) *Director {
	if deps.Rand == nil {
		deps.Rand = common.NewRand(1)
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultSettings().Capacity
	}
	d := &Director{
		cfg:   cfg,
		enemy: enemy,
		deps:  deps,
		log:   deps.Logger.With().Str("component", "director").Logger(),
		queue: NewQueue[*agent.Enemy](cfg.Capacity),
		gate:  timer.New(cfg.AttackInterval),
	}
	d.pool = pool.New(cfg.Capacity, pool.Hooks[*agent.Enemy]{
		Instantiate: d.instantiate,
		Activate:    d.activate,
		Deactivate:  d.deactivate,
	})
	return d
}

func (d *Director) instantiate(slot int) *agent.Enemy {
	var brain agent.Brain
	if d.deps.Brain != nil {
		brain = d.deps.Brain(slot)
	}
	e := agent.NewEnemy(d.deps.World.CreateEntity(), slot, d.enemy, agent.EnemyDeps{
		Coordinator: d,
		Space:       d.deps.Space,
		Events:      d.deps.World.Events(),
		Brain:       brain,
		Logger:      d.deps.Logger.With().Int("slot", slot).Logger(),
	})
	d.log.Debug().Int("slot", slot).Str("entity", e.ID().String()).Msg("enemy instantiated")
	return e
}

func (d *Director) activate(e *agent.Enemy) {
	e.Activate()
	if d.absolute != nil && d.enemy.ChaseAbsoluteTarget {
		e.Threat().Register(d.absolute, 0, d.cfg.MinAbsoluteAggro)
	}
	if d.deps.Space != nil {
		d.deps.Space.Track(e, entity.LayerEnemy)
	}
}

func (d *Director) deactivate(e *agent.Enemy) {
	e.Deactivate()
	d.queue.Remove(e)
	if d.deps.Space != nil {
		d.deps.Space.Untrack(e.ID())
	}
	d.emit(ecs.EventDespawned, e.ID(), nil)
}

// Update implements ecs.System.
func (d *Director) Update(w *ecs.World) {
	d.Step(w.DeltaTime())
}

// Step runs the attack gate once. While the gate is closed it only ticks;
// once open it stays open until a queued enemy accepts a grant.
func (d *Director) Step(dt float64) {
	if !d.gate.Reached() {
		d.gate.Tick(dt)
		return
	}
	e, ok := d.queue.PopNext()
	if !ok {
		return
	}
	if !e.ReceiveAttackSignal() {
		d.log.Debug().Int("slot", e.Slot()).Msg("attack grant refused")
		return
	}
	d.gate.SubtractTargetTime()
	d.gate.SetTarget(d.cfg.AttackInterval * d.cfg.Variance.Evaluate(d.deps.Rand.Float64()))
	d.queue.Jumble(d.deps.Rand)

	evt := ecs.ActionEvent{Action: e.Controller().Current().Name()}
	if target := e.Controller().Current().Target(); target != nil {
		evt.Target = target.ID()
	}
	d.emit(ecs.EventAttackGranted, e.ID(), evt)
}

// RequestAttack queues e for a grant. Repeated requests keep the original
// place in line.
func (d *Director) RequestAttack(e *agent.Enemy) {
	if e == nil || !e.Active() {
		return
	}
	d.queue.Add(e)
}

// RevokeAttack withdraws a pending request.
func (d *Director) RevokeAttack(e *agent.Enemy) {
	if e == nil {
		return
	}
	d.queue.Remove(e)
}

// SpawnEnemy activates a pooled enemy at pos and plays its spawn action. It
// returns false when the pool is exhausted.
func (d *Director) SpawnEnemy(pos, heading cp.Vector) (*agent.Enemy, bool) {
	e, ok := d.pool.ActivateNext()
	if !ok {
		d.deps.Metrics.PoolExhausted(poolName)
		d.log.Warn().Int("count", d.pool.Active()).Msg("enemy pool exhausted")
		return nil, false
	}
	e.StopDoingAnything()
	e.ForceSpawnAction(pos, heading)
	d.emit(ecs.EventSpawned, e.ID(), ecs.SpawnEvent{X: pos.X, Y: pos.Y})
	return e, true
}

// DespawnEnemy returns e to the pool.
func (d *Director) DespawnEnemy(e *agent.Enemy) {
	if e == nil {
		return
	}
	d.pool.Deactivate(e)
}

// DespawnAll returns every active enemy to the pool.
func (d *Director) DespawnAll() {
	d.buf = d.pool.Snapshot(d.buf[:0])
	for _, e := range d.buf {
		d.DespawnEnemy(e)
	}
}

// KillAll kills every active enemy. Corpses despawn on their own.
func (d *Director) KillAll() {
	d.buf = d.pool.Snapshot(d.buf[:0])
	for _, e := range d.buf {
		e.Die()
	}
}

// Reset empties the arena and rewinds the gate.
func (d *Director) Reset() {
	d.DespawnAll()
	d.queue.Clear()
	d.gate = timer.New(d.cfg.AttackInterval)
}

// SetAbsoluteTarget sets the entity every newly spawned enemy holds a
// minimum grudge against.
func (d *Director) SetAbsoluteTarget(e entity.Entity) {
	d.absolute = e
}

func (d *Director) AbsoluteTarget() entity.Entity { return d.absolute }

// Settings returns the current tuning.
func (d *Director) Settings() Settings { return d.cfg }

// SetSettings applies new gate tuning. Capacity is fixed at construction.
func (d *Director) SetSettings(cfg Settings) {
	cfg.Capacity = d.cfg.Capacity
	d.cfg = cfg
	if d.gate.Target > cfg.AttackInterval {
		d.gate.SetTarget(cfg.AttackInterval)
	}
}

// Count is the number of active enemies.
func (d *Director) Count() int { return d.pool.Active() }

func (d *Director) Capacity() int { return d.pool.Capacity() }

// Pending is the number of queued attack requests.
func (d *Director) Pending() int { return d.queue.Count() }

// Requested reports whether e is waiting for a grant.
func (d *Director) Requested(e *agent.Enemy) bool { return d.queue.Contains(e) }

// GateOpen reports whether the next queued request will be granted
// immediately.
func (d *Director) GateOpen() bool { return d.gate.Reached() }

// Enemies returns the active enemies in slot order.
func (d *Director) Enemies() []*agent.Enemy {
	return d.pool.Snapshot(nil)
}

// EachAgent implements agent.Roster.
func (d *Director) EachAgent(fn func(agent.Agent)) {
	d.pool.Each(func(e *agent.Enemy) { fn(e) })
}

func (d *Director) emit(typ ecs.EventType, id ecs.Entity, data any) {
	d.deps.World.Events().Push(ecs.Event{Type: typ, Entity: id, Data: data})
}
