package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCurveEvaluate(t *testing.T) {
	c := Curve{{T: 0, V: 0}, {T: 0.5, V: 1}, {T: 1, V: 0.5}}

	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "before first", in: -1, want: 0},
		{name: "first key", in: 0, want: 0},
		{name: "rising", in: 0.25, want: 0.5},
		{name: "peak", in: 0.5, want: 1},
		{name: "falling", in: 0.75, want: 0.75},
		{name: "after last", in: 2, want: 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, c.Evaluate(tc.in), 1e-9)
		})
	}
}

func TestCurveDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Curve(nil).Evaluate(0.3))
	assert.Equal(t, 2.0, Constant(2).Evaluate(0.3))
	assert.InDelta(t, 0.75, Linear(0.5, 1).Evaluate(0.5), 1e-9)
}

func TestCurveUnmarshalSortsKeys(t *testing.T) {
	var out struct {
		Curve Curve `yaml:"curve"`
	}
	src := "curve:\n  - {t: 1, v: 4}\n  - {t: 0, v: 2}\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &out))
	require.Len(t, out.Curve, 2)
	assert.Equal(t, 0.0, out.Curve[0].T)
	assert.InDelta(t, 3.0, out.Curve.Evaluate(0.5), 1e-9)
}

func TestNewRandZeroSeedIsDeterministic(t *testing.T) {
	a := NewRand(0)
	b := NewRand(1)
	assert.Equal(t, a.Int63(), b.Int63())
}
