// Package physics answers the arena's overlap queries with a Chipmunk space.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

const collisionTypeAgent cp.CollisionType = 1

// Agents share a group so the space never pairs them with each other; only
// queries see them.
const groupAgents uint = 1

// minStep keeps Step from short-circuiting when a sync runs with dt == 0.
const minStep = 1e-6

type tracked struct {
	entity entity.Entity
	body   *cp.Body
	shape  *cp.Shape
}

// Space mirrors every tracked entity as a kinematic circle. Bounding boxes
// are refreshed by Sync; overlap results are checked against live positions,
// so an entity that moved less than Margin since the last sync is still
// found.
type Space struct {
	space   *cp.Space
	tracked map[ecs.Entity]*tracked
	order   []ecs.Entity

	Margin float64
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	return &Space{
		space:   cp.NewSpace(),
		tracked: make(map[ecs.Entity]*tracked),
		Margin:  1,
	}
}

// Track adds e on the given layer. Tracking an entity twice is a no-op.
func (s *Space) Track(e entity.Entity, layer entity.Layer) {
	if s == nil || e == nil {
		return
	}
	if _, ok := s.tracked[e.ID()]; ok {
		return
	}
	body := s.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(e.Position())
	body.UserData = e

	radius := e.TargetRadius()
	if radius <= 0 {
		radius = 0.01
	}
	shape := s.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeAgent)
	shape.SetFilter(cp.NewShapeFilter(groupAgents, uint(layer), cp.ALL_CATEGORIES))
	shape.UserData = e

	s.tracked[e.ID()] = &tracked{entity: e, body: body, shape: shape}
	s.order = append(s.order, e.ID())
}

// Untrack removes the entity with the given id.
func (s *Space) Untrack(id ecs.Entity) {
	if s == nil {
		return
	}
	t, ok := s.tracked[id]
	if !ok {
		return
	}
	s.space.RemoveShape(t.shape)
	s.space.RemoveBody(t.body)
	delete(s.tracked, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Tracks reports whether id is in the space.
func (s *Space) Tracks(id ecs.Entity) bool {
	if s == nil {
		return false
	}
	_, ok := s.tracked[id]
	return ok
}

func (s *Space) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tracked)
}

// Sync copies entity positions into their bodies and steps the space so
// the spatial index sees the new bounding boxes.
func (s *Space) Sync(dt float64) {
	if s == nil {
		return
	}
	for _, id := range s.order {
		t := s.tracked[id]
		t.body.SetPosition(t.entity.Position())
		t.body.SetVelocity(0, 0)
	}
	if dt < minStep {
		dt = minStep
	}
	s.space.Step(dt)
}

// Update syncs the space once per tick.
func (s *Space) Update(w *ecs.World) {
	s.Sync(w.DeltaTime())
}

// Overlap appends every active entity on mask whose circle intersects the
// query circle.
func (s *Space) Overlap(center cp.Vector, radius float64, mask entity.Layer, out []entity.Entity) []entity.Entity {
	if s == nil || mask == entity.LayerNone {
		return out
	}
	bb := cp.NewBBForCircle(center, radius+s.Margin)
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	s.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		e, ok := shape.UserData.(entity.Entity)
		if !ok || !e.Active() {
			return
		}
		reach := radius + e.TargetRadius()
		if center.DistanceSq(e.Position()) > reach*reach {
			return
		}
		out = append(out, e)
	}, nil)
	return out
}
