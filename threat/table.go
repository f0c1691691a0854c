// Package threat tracks how much each nearby entity has provoked an agent
// and picks the most threatening one as its target.
package threat

import (
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

// Config tunes a Table.
type Config struct {
	Range       float64      `yaml:"range"`
	PassiveRate float64      `yaml:"passive_rate"`
	PassiveLoss float64      `yaml:"passive_loss"`
	Max         float64      `yaml:"max"`
	Mask        entity.Layer `yaml:"mask"`
}

func DefaultConfig() Config {
	return Config{
		Range:       15,
		PassiveRate: 5,
		PassiveLoss: 5,
		Max:         100,
		Mask:        entity.LayerPlayer | entity.LayerPayload,
	}
}

type entry struct {
	target entity.Entity
	value  float64
	min    float64
}

// Table is one agent's threat ledger. Entries are kept in insertion order
// so that ties resolve deterministically.
type Table struct {
	cfg   Config
	owner ecs.Entity

	entries []entry
	index   map[ecs.Entity]int

	top      int // index into entries, -1 when unknown
	topValue float64

	scan    []entity.Entity
	missing []ecs.Entity
	seen    map[ecs.Entity]struct{}
}

// New creates an empty table. owner is never counted as a target.
func New(owner ecs.Entity, cfg Config) *Table {
	return &Table{
		cfg:      cfg,
		owner:    owner,
		index:    make(map[ecs.Entity]int),
		top:      -1,
		topValue: math.Inf(-1),
		seen:     make(map[ecs.Entity]struct{}),
	}
}

func (t *Table) Config() Config { return t.cfg }

// SetConfig swaps tuning without touching existing entries.
func (t *Table) SetConfig(cfg Config) { t.cfg = cfg }

// Register adds e with an initial value and a floor. Registering an entity
// that is already present overwrites both.
func (t *Table) Register(e entity.Entity, initial, min float64) {
	if t == nil || e == nil {
		return
	}
	value := common.Clamp(initial, min, t.cfg.Max)
	if i, ok := t.index[e.ID()]; ok {
		t.entries[i].target = e
		t.entries[i].min = min
		t.set(i, value)
		return
	}
	t.index[e.ID()] = len(t.entries)
	t.entries = append(t.entries, entry{target: e, value: value, min: min})
	i := len(t.entries) - 1
	if t.top >= 0 && value > t.topValue {
		t.top, t.topValue = i, value
	}
}

// Deregister forgets e.
func (t *Table) Deregister(id ecs.Entity) {
	if t == nil {
		return
	}
	i, ok := t.index[id]
	if !ok {
		return
	}
	t.entries = slices.Delete(t.entries, i, i+1)
	delete(t.index, id)
	for j := i; j < len(t.entries); j++ {
		t.index[t.entries[j].target.ID()] = j
	}
	t.recompute()
}

// AddAggro raises e's threat, registering it with a zero floor if unknown.
func (t *Table) AddAggro(e entity.Entity, delta float64) {
	if t == nil || e == nil {
		return
	}
	i, ok := t.index[e.ID()]
	if !ok {
		t.Register(e, delta, 0)
		return
	}
	t.set(i, t.entries[i].value+delta)
}

// RemoveAggro lowers e's threat. Reaching zero or below deregisters it.
func (t *Table) RemoveAggro(id ecs.Entity, delta float64) {
	if t == nil {
		return
	}
	i, ok := t.index[id]
	if !ok {
		return
	}
	value := common.Clamp(t.entries[i].value-delta, t.entries[i].min, t.cfg.Max)
	if value <= 0 {
		t.Deregister(id)
		return
	}
	t.set(i, value)
}

// Reset zeroes every entry in place. The top target is recomputed on the
// next query.
func (t *Table) Reset() {
	if t == nil {
		return
	}
	for i := range t.entries {
		t.entries[i].value = 0
	}
	t.top = -1
	t.topValue = math.Inf(-1)
}

// Clear removes every entry.
func (t *Table) Clear() {
	if t == nil {
		return
	}
	t.entries = t.entries[:0]
	clear(t.index)
	t.top = -1
	t.topValue = math.Inf(-1)
}

// Target returns the highest threat entity, or nil when the table is empty.
func (t *Table) Target() entity.Entity {
	if t == nil {
		return nil
	}
	if t.top < 0 {
		t.recompute()
	}
	if t.top < 0 {
		return nil
	}
	return t.entries[t.top].target
}

// Aggro returns e's threat and whether it is registered.
func (t *Table) Aggro(id ecs.Entity) (float64, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[id]
	if !ok {
		return 0, false
	}
	return t.entries[i].value, true
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Update applies passive threat: entities found within range gain threat,
// registered entities that were not found lose it. Dead entities are never
// detected, so their threat decays.
func (t *Table) Update(dt float64, origin cp.Vector, q entity.SpatialQuery) {
	if t == nil || q == nil || dt <= 0 {
		return
	}
	clear(t.seen)
	t.scan = q.Overlap(origin, t.cfg.Range, t.cfg.Mask, t.scan[:0])
	for _, e := range t.scan {
		if e == nil || e.ID() == t.owner {
			continue
		}
		if s := e.Stats(); s != nil && s.IsDead() {
			continue
		}
		if _, dup := t.seen[e.ID()]; dup {
			continue
		}
		t.seen[e.ID()] = struct{}{}
		t.AddAggro(e, t.cfg.PassiveRate*dt)
	}

	t.missing = t.missing[:0]
	for _, en := range t.entries {
		if _, ok := t.seen[en.target.ID()]; !ok {
			t.missing = append(t.missing, en.target.ID())
		}
	}
	for _, id := range t.missing {
		t.RemoveAggro(id, t.cfg.PassiveLoss*dt)
	}
}

func (t *Table) set(i int, value float64) {
	en := &t.entries[i]
	en.value = common.Clamp(value, en.min, t.cfg.Max)
	switch {
	case i == t.top:
		t.recompute()
	case t.top >= 0 && en.value > t.topValue:
		t.top, t.topValue = i, en.value
	}
}

func (t *Table) recompute() {
	t.top = -1
	t.topValue = math.Inf(-1)
	for i, en := range t.entries {
		if en.value > t.topValue {
			t.top, t.topValue = i, en.value
		}
	}
}
