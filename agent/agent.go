package agent

import (
	"github.com/milk9111/melee/action"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
)

// Agent is an actor that runs behaviour and actions every tick.
type Agent interface {
	entity.Entity
	action.Actionable
	Tick(dt float64)
	Controller() *action.Controller
}

// Roster enumerates active agents.
type Roster interface {
	EachAgent(fn func(Agent))
}

// Group is a fixed roster.
type Group []Agent

func (g Group) EachAgent(fn func(Agent)) {
	for _, a := range g {
		if a != nil && a.Active() {
			fn(a)
		}
	}
}

// AgentSystem invokes every agent's behaviour.
type AgentSystem struct {
	rosters []Roster
}

func NewAgentSystem(rosters ...Roster) *AgentSystem {
	return &AgentSystem{rosters: rosters}
}

func (s *AgentSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	for _, r := range s.rosters {
		r.EachAgent(func(a Agent) { a.Tick(dt) })
	}
}

// ActionSystem advances every running action. It runs after behaviour and
// the attack gate so transitions made this tick are already applied.
type ActionSystem struct {
	rosters []Roster
}

func NewActionSystem(rosters ...Roster) *ActionSystem {
	return &ActionSystem{rosters: rosters}
}

func (s *ActionSystem) Update(w *ecs.World) {
	dt := w.DeltaTime()
	for _, r := range s.rosters {
		r.EachAgent(func(a Agent) { a.Controller().Perform(dt) })
	}
}

var (
	_ Agent           = (*Enemy)(nil)
	_ Agent           = (*Player)(nil)
	_ entity.Entity   = (*Payload)(nil)
	_ action.Elevator = (*Enemy)(nil)
	_ BrainHost       = (*Enemy)(nil)
)
