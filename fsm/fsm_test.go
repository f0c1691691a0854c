package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState int

const (
	stateA testState = iota
	stateB
	stateC
)

type recorder struct {
	calls []string
}

func recording(name string) Funcs[*recorder] {
	return Funcs[*recorder]{
		ID:       name,
		OnEnter:  func(r *recorder) { r.calls = append(r.calls, "enter "+name) },
		OnExit:   func(r *recorder) { r.calls = append(r.calls, "exit "+name) },
		OnInvoke: func(r *recorder) { r.calls = append(r.calls, "invoke "+name) },
	}
}

func newMachine(r *recorder) *Machine[*recorder, testState] {
	return New[*recorder, testState](r, recording("a"), recording("b"), recording("c"))
}

func TestInitEntersWithoutExit(t *testing.T) {
	r := &recorder{}
	m := newMachine(r)
	require.False(t, m.Initialised())

	m.Init(stateB)

	assert.Equal(t, []string{"enter b"}, r.calls)
	assert.Equal(t, stateB, m.Current())
	assert.Equal(t, "b", m.CurrentName())
}

func TestChangeToOrder(t *testing.T) {
	cases := []struct {
		name string
		from testState
		to   testState
		want []string
	}{
		{name: "different state", from: stateA, to: stateC, want: []string{"exit a", "enter c"}},
		{name: "re-entry", from: stateB, to: stateB, want: []string{"exit b", "enter b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &recorder{}
			m := newMachine(r)
			m.Init(tc.from)
			r.calls = nil

			m.ChangeTo(tc.to)

			assert.Equal(t, tc.want, r.calls)
			assert.Equal(t, tc.to, m.Current())
		})
	}
}

func TestInvokeOnlyCurrent(t *testing.T) {
	r := &recorder{}
	m := newMachine(r)

	m.Invoke()
	assert.Empty(t, r.calls, "invoke before init is a no-op")

	m.Init(stateA)
	r.calls = nil
	m.Invoke()
	assert.Equal(t, []string{"invoke a"}, r.calls)
}

func TestChangeToBeforeInitActsAsInit(t *testing.T) {
	r := &recorder{}
	m := newMachine(r)
	m.ChangeTo(stateC)
	assert.Equal(t, []string{"enter c"}, r.calls)
}

func TestUnknownIndexIgnored(t *testing.T) {
	cases := []struct {
		name string
		i    testState
	}{
		{name: "past the end", i: testState(3)},
		{name: "negative", i: testState(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &recorder{}
			m := newMachine(r)
			m.Init(tc.i)
			assert.False(t, m.Initialised())
			assert.Nil(t, m.State(tc.i))

			m.Init(stateB)
			m.ChangeTo(tc.i)
			assert.Equal(t, stateB, m.Current())
			assert.False(t, m.Is(tc.i))
			assert.Equal(t, []string{"enter b"}, r.calls)
		})
	}
}

type selfOwner struct {
	m     *Machine[*selfOwner, testState]
	trace []string
}

func TestTransitionFromInvoke(t *testing.T) {
	o := &selfOwner{}
	o.m = New[*selfOwner, testState](o,
		Funcs[*selfOwner]{ID: "a", OnInvoke: func(o *selfOwner) { o.m.ChangeTo(stateB) }},
		Funcs[*selfOwner]{ID: "b", OnEnter: func(o *selfOwner) { o.trace = append(o.trace, "b") }},
	)
	o.m.Init(stateA)
	o.m.Invoke()
	assert.Equal(t, []string{"b"}, o.trace)
	assert.Equal(t, stateB, o.m.Current())
}
