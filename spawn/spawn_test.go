package spawn

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpawner struct {
	active    int
	limit     int
	positions []cp.Vector
}

func (f *fakeSpawner) SpawnEnemy(pos, heading cp.Vector) (*agent.Enemy, bool) {
	if f.limit > 0 && f.active >= f.limit {
		return nil, false
	}
	f.active++
	f.positions = append(f.positions, pos)
	return nil, true
}

func (f *fakeSpawner) Count() int { return f.active }

func TestAmountToSpawn(t *testing.T) {
	cases := []struct {
		name   string
		active int
		want   int
	}{
		{name: "empty arena gets desired", active: 0, want: 5},
		{name: "clamped to roof", active: 3, want: 4},
		{name: "roof equals over spawn", active: 5, want: 2},
		{name: "over population still over spawns", active: 6, want: 2},
		{name: "absolute limit", active: 11, want: 1},
		{name: "at absolute limit", active: 12, want: 0},
		{name: "beyond absolute limit", active: 14, want: 0},
	}
	cfg := DefaultSettings()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cfg.AmountToSpawn(tc.active))
		})
	}
}

func TestSanitize(t *testing.T) {
	cfg := Settings{Desired: -1, MaxPopulation: -2, OverSpawn: -3, MiniWaveInterval: 0}
	cfg.Sanitize()
	assert.Equal(t, Settings{MiniWaveInterval: minMiniWaveInterval}, cfg)
}

func TestZoneStaysInBounds(t *testing.T) {
	z := Zone{Center: cp.Vector{X: 10, Y: -4}, Extents: cp.Vector{X: 2, Y: 1}}
	rng := common.NewRand(3)
	for i := 0; i < 200; i++ {
		p := z.RandomPosition(rng)
		assert.GreaterOrEqual(t, p.X, 8.0)
		assert.LessOrEqual(t, p.X, 12.0)
		assert.GreaterOrEqual(t, p.Y, -5.0)
		assert.LessOrEqual(t, p.Y, -3.0)
		assert.InDelta(t, 1, z.RandomHeading(rng).Length(), 1e-9)
	}
}

func TestZoneIsDeterministicPerSeed(t *testing.T) {
	z := Zone{Extents: cp.Vector{X: 5, Y: 5}}
	a, b := common.NewRand(9), common.NewRand(9)
	for i := 0; i < 10; i++ {
		assert.Equal(t, z.RandomPosition(a), z.RandomPosition(b))
	}
}

func TestControllerReleasesWaveOnePerInterval(t *testing.T) {
	sp := &fakeSpawner{}
	c := NewController(DefaultSettings(), Zone{Extents: cp.Vector{X: 1, Y: 1}}, sp, common.NewRand(1), zerolog.Nop())

	for i := 0; i < 4; i++ {
		c.Step(1)
	}
	assert.Zero(t, sp.active)

	c.Step(1)
	assert.Equal(t, 1, sp.active, "first enemy spawns on the wave tick")
	assert.Equal(t, 4, c.Remaining())

	for i := 0; i < 4; i++ {
		c.Step(0.01)
	}
	assert.Equal(t, 5, sp.active)
	assert.Zero(t, c.Remaining())

	c.Step(0.01)
	assert.Equal(t, 5, sp.active)
}

func TestControllerSecondWaveRespectsPopulation(t *testing.T) {
	sp := &fakeSpawner{active: 5}
	c := NewController(DefaultSettings(), Zone{}, sp, common.NewRand(1), zerolog.Nop())

	c.Step(5)
	require.Equal(t, 1, c.Remaining())
	c.Step(0.01)
	assert.Equal(t, 7, sp.active)
	assert.Zero(t, c.Remaining())
}

func TestForceSpawnCountsSuccesses(t *testing.T) {
	sp := &fakeSpawner{limit: 3}
	c := NewController(DefaultSettings(), Zone{}, sp, nil, zerolog.Nop())
	assert.Equal(t, 3, c.ForceSpawn(5))
}

func TestResetDropsWave(t *testing.T) {
	sp := &fakeSpawner{}
	c := NewController(DefaultSettings(), Zone{}, sp, nil, zerolog.Nop())
	c.Step(5)
	require.Equal(t, 4, c.Remaining())

	c.Reset()
	assert.Zero(t, c.Remaining())
	c.Step(4.9)
	assert.Equal(t, 1, sp.active)
}
