package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dummy struct {
	id     ecs.Entity
	pos    cp.Vector
	radius float64
	active bool
}

func (d *dummy) ID() ecs.Entity           { return d.id }
func (d *dummy) Name() string             { return "dummy" }
func (d *dummy) Position() cp.Vector      { return d.pos }
func (d *dummy) Heading() cp.Vector       { return cp.Vector{X: 1} }
func (d *dummy) Team() entity.Team        { return entity.TeamEnemy }
func (d *dummy) TargetRadius() float64    { return d.radius }
func (d *dummy) Stats() *entity.Stats     { return nil }
func (d *dummy) Active() bool             { return d.active }
func (d *dummy) ReceiveHit(entity.Entity) {}

func ids(found []entity.Entity) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(found))
	for _, e := range found {
		out = append(out, e.ID())
	}
	return out
}

func TestOverlapFiltersByDistanceAndLayer(t *testing.T) {
	s := NewSpace()
	near := &dummy{id: 1, pos: cp.Vector{X: 2}, radius: 0.5, active: true}
	edge := &dummy{id: 2, pos: cp.Vector{X: 3.4}, radius: 0.5, active: true}
	far := &dummy{id: 3, pos: cp.Vector{X: 10}, radius: 0.5, active: true}
	payload := &dummy{id: 4, pos: cp.Vector{Y: 1}, radius: 0.5, active: true}
	parked := &dummy{id: 5, pos: cp.Vector{}, radius: 0.5, active: false}

	s.Track(near, entity.LayerEnemy)
	s.Track(edge, entity.LayerEnemy)
	s.Track(far, entity.LayerEnemy)
	s.Track(payload, entity.LayerPayload)
	s.Track(parked, entity.LayerEnemy)
	require.Equal(t, 5, s.Len())

	cases := []struct {
		name string
		mask entity.Layer
		want []ecs.Entity
	}{
		{name: "enemies", mask: entity.LayerEnemy, want: []ecs.Entity{1, 2}},
		{name: "payload", mask: entity.LayerPayload, want: []ecs.Entity{4}},
		{name: "both", mask: entity.LayerEnemy | entity.LayerPayload, want: []ecs.Entity{1, 2, 4}},
		{name: "none", mask: entity.LayerNone, want: []ecs.Entity{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Overlap(cp.Vector{}, 3, tc.mask, nil)
			assert.ElementsMatch(t, tc.want, ids(got))
		})
	}
}

func TestSyncFollowsMovement(t *testing.T) {
	s := NewSpace()
	s.Margin = 0
	d := &dummy{id: 1, pos: cp.Vector{}, radius: 0.5, active: true}
	s.Track(d, entity.LayerPlayer)

	d.pos = cp.Vector{X: 20, Y: 20}
	s.Sync(0)

	assert.Empty(t, s.Overlap(cp.Vector{}, 1, entity.LayerAll, nil))
	assert.Len(t, s.Overlap(cp.Vector{X: 20, Y: 20}, 1, entity.LayerAll, nil), 1)
}

func TestUntrack(t *testing.T) {
	s := NewSpace()
	d := &dummy{id: 1, radius: 0.5, active: true}
	s.Track(d, entity.LayerEnemy)
	s.Track(d, entity.LayerEnemy)
	assert.Equal(t, 1, s.Len())

	s.Untrack(1)
	s.Untrack(1)
	assert.False(t, s.Tracks(1))
	assert.Empty(t, s.Overlap(cp.Vector{}, 5, entity.LayerAll, nil))
}

func TestUpdateSyncsFromWorld(t *testing.T) {
	s := NewSpace()
	s.Margin = 0
	d := &dummy{id: 1, radius: 0.5, active: true}
	s.Track(d, entity.LayerEnemy)
	w := ecs.NewWorld(s)

	d.pos = cp.Vector{X: 8}
	w.Update(1.0 / 60)

	assert.Len(t, s.Overlap(cp.Vector{X: 8}, 0.1, entity.LayerEnemy, nil), 1)
}
