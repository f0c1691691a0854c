package common

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Key is a single keyframe of a Curve.
type Key struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

// Curve is a piecewise linear function over keyframes sorted by T.
// Inputs outside the keyed range are clamped to the first/last key.
type Curve []Key

func Constant(v float64) Curve {
	return Curve{{T: 0, V: v}}
}

func Linear(from, to float64) Curve {
	return Curve{{T: 0, V: from}, {T: 1, V: to}}
}

func (c Curve) Evaluate(t float64) float64 {
	switch len(c) {
	case 0:
		return 0
	case 1:
		return c[0].V
	}
	if t <= c[0].T {
		return c[0].V
	}
	last := c[len(c)-1]
	if t >= last.T {
		return last.V
	}
	i := sort.Search(len(c), func(i int) bool { return c[i].T > t })
	a, b := c[i-1], c[i]
	span := b.T - a.T
	if span <= 0 {
		return b.V
	}
	return Lerp(a.V, b.V, (t-a.T)/span)
}

func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	var keys []Key
	if err := node.Decode(&keys); err != nil {
		return fmt.Errorf("curve: %w", err)
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].T < keys[j].T })
	*c = keys
	return nil
}
