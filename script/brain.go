// Package script runs enemy decision logic written in tengo.
package script

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/prefabs"
)

// ErrMissingEntry is returned when a script does not define decide.
var ErrMissingEntry = errors.New("script: missing decide function")

const entryName = "decide"

const brainDispatchScript = `
if __phase == "decide" {
	decide(__engine, __state)
}
`

// Brain is a compiled decision script. Each enemy needs its own Brain; use
// Clone to share one compilation.
type Brain struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	host     agent.BrainHost
}

// Load compiles a script from the prefab scripts directory.
func Load(name string) (*Brain, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

// Compile builds a Brain from tengo source defining
// decide := func(engine, state) { ... }.
func Compile(name string, src []byte) (*Brain, error) {
	if err := checkEntry(name, src); err != nil {
		return nil, err
	}

	full := append(append([]byte{}, src...), brainDispatchScript...)
	s := tengo.NewScript(full)
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap("math", "rand", "fmt", "text"))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	b := &Brain{name: name, compiled: compiled}
	b.reset()
	return b, nil
}

// checkEntry runs the bare source once to verify it defines a callable
// decide.
func checkEntry(name string, src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "rand", "fmt", "text"))
	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}
	if !compiled.IsDefined(entryName) || !compiled.Get(entryName).Object().CanCall() {
		return fmt.Errorf("%w: %s", ErrMissingEntry, name)
	}
	return nil
}

func (b *Brain) reset() {
	b.state = &tengo.Map{Value: map[string]tengo.Object{}}
	b.engine = b.buildEngine()
}

// Clone returns an independent Brain sharing the compiled bytecode.
func (b *Brain) Clone() *Brain {
	c := &Brain{name: b.name, compiled: b.compiled.Clone()}
	c.reset()
	return c
}

func (b *Brain) Name() string { return b.name }

// State returns a copy of the script's persistent state map.
func (b *Brain) State() map[string]any {
	out := make(map[string]any, len(b.state.Value))
	for k, v := range b.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

// Decide implements agent.Brain.
func (b *Brain) Decide(h agent.BrainHost) error {
	if b == nil || b.compiled == nil {
		return fmt.Errorf("script: nil brain")
	}
	b.host = h
	defer func() { b.host = nil }()

	if err := b.compiled.Set("__phase", entryName); err != nil {
		return err
	}
	if err := b.compiled.Set("__engine", b.engine); err != nil {
		return err
	}
	if err := b.compiled.Set("__state", b.state); err != nil {
		return err
	}
	if err := b.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s decide: %w", b.name, err)
	}
	return nil
}

func (b *Brain) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["name"] = &tengo.UserFunction{Name: "name", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil {
			return &tengo.String{}, nil
		}
		return &tengo.String{Value: b.host.Name()}, nil
	}}

	values["has_target"] = &tengo.UserFunction{Name: "has_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(b.host != nil && b.host.HasTarget()), nil
	}}

	values["target_distance"] = &tengo.UserFunction{Name: "target_distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil || !b.host.HasTarget() {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: b.host.TargetDistance()}, nil
	}}

	values["attack_range"] = &tengo.UserFunction{Name: "attack_range", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil {
			return &tengo.Float{}, nil
		}
		return &tengo.Float{Value: b.host.AttackRange()}, nil
	}}

	values["attack_ready"] = &tengo.UserFunction{Name: "attack_ready", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(b.host != nil && b.host.AttackReady()), nil
	}}

	values["health_ratio"] = &tengo.UserFunction{Name: "health_ratio", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil {
			return &tengo.Float{}, nil
		}
		return &tengo.Float{Value: b.host.HealthRatio()}, nil
	}}

	values["request_attack"] = &tengo.UserFunction{Name: "request_attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil {
			return tengo.FalseValue, nil
		}
		b.host.RequestAttack()
		return tengo.TrueValue, nil
	}}

	values["revoke_attack"] = &tengo.UserFunction{Name: "revoke_attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil {
			return tengo.FalseValue, nil
		}
		b.host.RevokeAttack()
		return tengo.TrueValue, nil
	}}

	values["hold"] = &tengo.UserFunction{Name: "hold", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.host == nil {
			return tengo.FalseValue, nil
		}
		b.host.Hold()
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
