// Package entity defines the capabilities the combat core consumes from the
// agents it drives. Players, enemies and payloads implement Entity.
package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/ecs"
)

// Entity is anything that occupies the arena and can be targeted.
type Entity interface {
	ID() ecs.Entity
	Name() string
	Position() cp.Vector
	Heading() cp.Vector
	Team() Team
	TargetRadius() float64
	Stats() *Stats
	// Active is false for pooled agents that are currently parked.
	Active() bool
	ReceiveHit(attacker Entity)
}

// SpatialQuery finds active entities overlapping a circle. Results are
// appended to out, which is returned.
type SpatialQuery interface {
	Overlap(center cp.Vector, radius float64, mask Layer, out []Entity) []Entity
}

// Animator triggers animation clips. Calls are fire-and-forget.
type Animator interface {
	Play(clip string, blend float64)
	SetFloat(parameter string, value float64)
}

// Hostile reports whether a and b are on opposing teams.
func Hostile(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Team() != b.Team()
}
