package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerReached(t *testing.T) {
	cases := []struct {
		name    string
		target  float64
		ticks   []float64
		reached bool
		norm    float64
	}{
		{name: "fresh", target: 1, reached: false, norm: 0},
		{name: "half", target: 2, ticks: []float64{0.5, 0.5}, reached: false, norm: 0.5},
		{name: "exact", target: 1, ticks: []float64{0.25, 0.75}, reached: true, norm: 1},
		{name: "overshoot", target: 1, ticks: []float64{1.5}, reached: true, norm: 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm := New(tc.target)
			for _, dt := range tc.ticks {
				tm.Tick(dt)
			}
			assert.Equal(t, tc.reached, tm.Reached())
			assert.InDelta(t, tc.norm, tm.Normalized(), 1e-9)
		})
	}
}

func TestTimerSubtractKeepsOvershoot(t *testing.T) {
	tm := New(1)
	tm.Tick(1.25)
	tm.SubtractTargetTime()
	assert.InDelta(t, 0.25, tm.Elapsed, 1e-9)
	assert.False(t, tm.Reached())

	tm.Reset()
	assert.Equal(t, 0.0, tm.Elapsed)
}

func TestTimerNilSafe(t *testing.T) {
	var tm *Timer
	tm.Tick(1)
	tm.Reset()
	assert.False(t, tm.Reached())
}

func TestReadyCooldown(t *testing.T) {
	fired := 0
	r := NewReady(1)
	r.OnReady = func() { fired++ }

	assert.True(t, r.Pop())
	assert.False(t, r.Pop())

	r.Tick(0.5)
	assert.False(t, r.IsReady())
	r.Tick(0.5)
	assert.True(t, r.IsReady())
	assert.Equal(t, 1, fired)

	r.Tick(1)
	assert.Equal(t, 1, fired)
}

func TestReadyTimeScale(t *testing.T) {
	r := NewReady(1)
	r.TimeScale = 2
	r.Pop()
	r.Tick(0.5)
	assert.True(t, r.IsReady())
}
