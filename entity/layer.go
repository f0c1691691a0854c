package entity

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Team groups entities that never damage or target each other.
type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// Layer is a collision category bit mask.
type Layer uint

const (
	LayerPlayer Layer = 1 << iota
	LayerEnemy
	LayerPayload

	LayerNone Layer = 0
	LayerAll  Layer = ^Layer(0)
)

// Has reports whether any bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other != 0
}

func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

var layerNames = map[string]Layer{
	"player":  LayerPlayer,
	"enemy":   LayerEnemy,
	"payload": LayerPayload,
	"all":     LayerAll,
	"none":    LayerNone,
}

// UnmarshalYAML accepts either a raw bit mask or a list of layer names.
func (l *Layer) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if named, ok := layerNames[strings.ToLower(node.Value)]; ok {
			*l = named
			return nil
		}
		var raw uint
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("entity: layer %q: %w", node.Value, err)
		}
		*l = Layer(raw)
		return nil
	}
	var names []string
	if err := node.Decode(&names); err != nil {
		return fmt.Errorf("entity: layer list: %w", err)
	}
	var mask Layer
	for _, name := range names {
		named, ok := layerNames[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("entity: unknown layer %q", name)
		}
		mask |= named
	}
	*l = mask
	return nil
}
