// Package fsm is a small indexed finite state machine used by agent
// behaviours and any other owner type that needs enter/exit/invoke states.
package fsm

// State is one behaviour of an owner. States are usually stateless values
// shared between every owner of the same type.
type State[T any] interface {
	Name() string
	Enter(owner T)
	Exit(owner T)
	Invoke(owner T)
}

// Machine drives owner through a fixed, indexed set of states. S is normally
// a named int enumerating the states in the same order they were passed to
// New.
type Machine[T any, S ~int] struct {
	owner   T
	states  []State[T]
	current int
}

// New creates a machine. It does not enter any state until Init is called.
func New[T any, S ~int](owner T, states ...State[T]) *Machine[T, S] {
	copied := append([]State[T](nil), states...)
	return &Machine[T, S]{owner: owner, states: copied, current: -1}
}

// Init enters state i without exiting anything. An unknown index is ignored.
func (m *Machine[T, S]) Init(i S) {
	if !m.valid(i) {
		return
	}
	m.current = int(i)
	m.states[m.current].Enter(m.owner)
}

// ChangeTo exits the current state and enters state i. Re-entering the
// current state runs both hooks. An index outside the machine's states is
// ignored.
func (m *Machine[T, S]) ChangeTo(i S) {
	if !m.valid(i) {
		return
	}
	if m.current < 0 {
		m.Init(i)
		return
	}
	m.states[m.current].Exit(m.owner)
	m.current = int(i)
	m.states[m.current].Enter(m.owner)
}

// Invoke runs the current state's per-tick behaviour.
func (m *Machine[T, S]) Invoke() {
	if m == nil || m.current < 0 {
		return
	}
	m.states[m.current].Invoke(m.owner)
}

// Current returns the current state index, or -1 before Init.
func (m *Machine[T, S]) Current() S {
	if m == nil {
		return S(-1)
	}
	return S(m.current)
}

// Is reports whether the machine is currently in state i.
func (m *Machine[T, S]) Is(i S) bool {
	return m != nil && m.current >= 0 && m.current == int(i)
}

func (m *Machine[T, S]) Initialised() bool {
	return m != nil && m.current >= 0
}

// State returns the state object stored at index i, or nil if there is none.
func (m *Machine[T, S]) State(i S) State[T] {
	if !m.valid(i) {
		return nil
	}
	return m.states[i]
}

// CurrentName is the name of the current state, or "" before Init.
func (m *Machine[T, S]) CurrentName() string {
	if m == nil || m.current < 0 {
		return ""
	}
	return m.states[m.current].Name()
}

func (m *Machine[T, S]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.states)
}

func (m *Machine[T, S]) valid(i S) bool {
	return m != nil && i >= 0 && int(i) < len(m.states)
}
