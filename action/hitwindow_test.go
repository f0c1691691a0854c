package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitWindowTick(t *testing.T) {
	cases := []struct {
		name   string
		window Window
		ticks  []float64
		want   []bool
		final  WindowPhase
	}{
		{
			name:   "enable then disable",
			window: Window{Enable: 0.2, Disable: 0.8},
			ticks:  []float64{0.1, 0.3, 0.9},
			want:   []bool{false, true, false},
			final:  PhaseEnded,
		},
		{
			name:   "boundary is exclusive",
			window: Window{Enable: 0.2, Disable: 0.8},
			ticks:  []float64{0.2, 0.8, 0.81},
			want:   []bool{false, true, false},
			final:  PhaseEnded,
		},
		{
			name:   "inverted window never shows",
			window: Window{Enable: 0.6, Disable: 0.4},
			ticks:  []float64{0.5, 0.7, 1},
			want:   []bool{false, false, false},
			final:  PhaseEnded,
		},
		{
			name:   "latched after end",
			window: Window{Enable: 0.2, Disable: 0.5},
			ticks:  []float64{0.6, 0.3},
			want:   []bool{false, false},
			final:  PhaseEnded,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hb := NewHitbox(nil, 1, 1, 0)
			w := NewHitWindow(hb)
			w.Reset()
			for i, at := range tc.ticks {
				w.Tick(tc.window, at)
				assert.Equal(t, tc.want[i], hb.Active(), "t=%v", at)
			}
			assert.Equal(t, tc.final, w.Phase())
		})
	}
}

func TestHitWindowCancelForcesOff(t *testing.T) {
	hb := NewHitbox(nil, 1, 1, 0)
	w := NewHitWindow(hb)
	w.Reset()
	w.Tick(Window{Enable: 0.1, Disable: 0.9}, 0.5)
	assert.True(t, hb.Active())

	w.Cancel()
	assert.False(t, hb.Active())

	w.Reset()
	assert.Equal(t, PhaseArmed, w.Phase())
}

func TestHitWindowWithoutHitbox(t *testing.T) {
	w := NewHitWindow(nil)
	w.Reset()
	w.Tick(Window{Enable: 0.1, Disable: 0.9}, 0.5)
	assert.Equal(t, PhaseEnabled, w.Phase())
	w.Cancel()
}
