package script

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	target   bool
	distance float64
	reach    float64
	ready    bool
	health   float64

	requested int
	revoked   int
	held      int
}

func (h *fakeHost) Name() string    { return "grunt" }
func (h *fakeHost) HasTarget() bool { return h.target }
func (h *fakeHost) TargetDistance() float64 {
	if !h.target {
		return math.Inf(1)
	}
	return h.distance
}
func (h *fakeHost) AttackRange() float64 { return h.reach }
func (h *fakeHost) AttackReady() bool    { return h.ready }
func (h *fakeHost) HealthRatio() float64 { return h.health }
func (h *fakeHost) RequestAttack()       { h.requested++ }
func (h *fakeHost) RevokeAttack()        { h.revoked++ }
func (h *fakeHost) Hold()                { h.held++ }

const aggressive = `
decide := func(engine, state) {
	if !engine.has_target() {
		engine.revoke_attack()
		return
	}
	if engine.target_distance() <= engine.attack_range() {
		if engine.attack_ready() {
			engine.request_attack()
		}
		engine.hold()
	}
	state.seen = engine.name()
}
`

func TestDecideDrivesHost(t *testing.T) {
	tests := []struct {
		name      string
		host      fakeHost
		requested int
		revoked   int
		held      int
	}{
		{name: "no target", host: fakeHost{health: 1}, revoked: 1},
		{name: "out of range", host: fakeHost{target: true, distance: 3, reach: 1, ready: true, health: 1}},
		{name: "in range ready", host: fakeHost{target: true, distance: 0.5, reach: 1, ready: true, health: 1}, requested: 1, held: 1},
		{name: "in range cooling down", host: fakeHost{target: true, distance: 0.5, reach: 1, health: 1}, held: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Compile("inline", []byte(aggressive))
			require.NoError(t, err)

			h := tt.host
			require.NoError(t, b.Decide(&h))
			assert.Equal(t, tt.requested, h.requested)
			assert.Equal(t, tt.revoked, h.revoked)
			assert.Equal(t, tt.held, h.held)
		})
	}
}

func TestStatePersistsAcrossDecisions(t *testing.T) {
	b, err := Compile("counter", []byte(`
decide := func(engine, state) {
	if is_undefined(state.n) {
		state.n = 0
	}
	state.n += 1
}
`))
	require.NoError(t, err)

	h := &fakeHost{}
	for range 3 {
		require.NoError(t, b.Decide(h))
	}
	assert.Equal(t, int64(3), b.State()["n"])
}

func TestCompileRejectsMissingEntry(t *testing.T) {
	_, err := Compile("empty", []byte(`x := 1`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEntry))

	_, err = Compile("not-callable", []byte(`decide := 4`))
	assert.ErrorIs(t, err, ErrMissingEntry)
}

func TestCompileReportsSyntaxErrors(t *testing.T) {
	_, err := Compile("broken", []byte(`decide := func(engine, state) {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script: compile broken")
	assert.False(t, errors.Is(err, ErrMissingEntry))
}

func TestDecideWrapsRuntimeErrors(t *testing.T) {
	b, err := Compile("faulty", []byte(`
decide := func(engine, state) {
	x := engine.target_distance() + "far"
}
`))
	require.NoError(t, err)

	err = b.Decide(&fakeHost{target: true, distance: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script: faulty decide")
}

func TestCloneHasIndependentState(t *testing.T) {
	b, err := Compile("inline", []byte(aggressive))
	require.NoError(t, err)
	c := b.Clone()

	require.NoError(t, b.Decide(&fakeHost{target: true, health: 1}))
	assert.Equal(t, "grunt", b.State()["seen"])
	assert.Empty(t, c.State())
	assert.Equal(t, b.Name(), c.Name())
}

func TestLoadEmbeddedBrain(t *testing.T) {
	b, err := Load("enemy_brain.tengo")
	require.NoError(t, err)

	h := &fakeHost{target: true, distance: 0.2, reach: 1, ready: true, health: 1}
	require.NoError(t, b.Decide(h))
	assert.Equal(t, 1, h.requested)
	assert.Equal(t, 1, h.held)
	assert.Equal(t, int64(1), b.State()["requests"])

	hurt := &fakeHost{target: true, distance: 0.2, reach: 1, ready: true, health: 0.1}
	require.NoError(t, b.Decide(hurt))
	assert.Zero(t, hurt.requested)
	assert.Equal(t, 1, hurt.revoked)
	assert.Equal(t, true, b.State()["retreating"])
}

func TestLoadUnknownScript(t *testing.T) {
	_, err := Load("missing.tengo")
	assert.Error(t, err)
}
