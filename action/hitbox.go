package action

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

// Hitbox is a weapon volume: a circle Reach units ahead of its owner. While
// active it hits each overlapping hostile at most once per activation.
type Hitbox struct {
	Owner  entity.Entity
	Radius float64
	Reach  float64
	Mask   entity.Layer

	active bool
	hit    map[ecs.Entity]struct{}
	buf    []entity.Entity
}

func NewHitbox(owner entity.Entity, radius, reach float64, mask entity.Layer) *Hitbox {
	return &Hitbox{
		Owner:  owner,
		Radius: radius,
		Reach:  reach,
		Mask:   mask,
		hit:    make(map[ecs.Entity]struct{}),
	}
}

// SetActive toggles the volume. Turning it on starts a new pass.
func (h *Hitbox) SetActive(on bool) {
	if h == nil {
		return
	}
	if on && !h.active {
		clear(h.hit)
	}
	h.active = on
}

func (h *Hitbox) Active() bool {
	return h != nil && h.active
}

// Center is the world position of the volume.
func (h *Hitbox) Center() cp.Vector {
	if h == nil || h.Owner == nil {
		return cp.Vector{}
	}
	pos := h.Owner.Position()
	heading := h.Owner.Heading()
	if heading.LengthSq() == 0 {
		return pos
	}
	return pos.Add(heading.Normalize().Mult(h.Reach))
}

// Sweep hits every new target overlapping the volume and returns how many
// were hit.
func (h *Hitbox) Sweep(q entity.SpatialQuery) int {
	if !h.Active() || q == nil || h.Owner == nil {
		return 0
	}
	h.buf = q.Overlap(h.Center(), h.Radius, h.Mask, h.buf[:0])
	hits := 0
	for _, target := range h.buf {
		if target == nil || target.ID() == h.Owner.ID() || !entity.Hostile(h.Owner, target) {
			continue
		}
		if _, done := h.hit[target.ID()]; done {
			continue
		}
		h.hit[target.ID()] = struct{}{}
		target.ReceiveHit(h.Owner)
		hits++
	}
	return hits
}

// HitCount is the number of targets hit in the current pass.
func (h *Hitbox) HitCount() int {
	if h == nil {
		return 0
	}
	return len(h.hit)
}
