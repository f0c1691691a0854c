package action

import (
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/timer"
)

type controllerState int

const (
	stateIdle controllerState = iota
	stateActive
)

// Controller runs at most one MoveAction at a time for its owner.
type Controller struct {
	owner Actionable

	state  controllerState
	action *MoveAction // set only while stateActive
	timer  timer.Timer

	OnBegin  func(m *MoveAction, target entity.Entity)
	OnEnd    func(m *MoveAction)
	OnCancel func(m *MoveAction)
}

func NewController(owner Actionable) *Controller {
	return &Controller{owner: owner}
}

// TryBegin starts m unless an action is already running.
func (c *Controller) TryBegin(m *MoveAction, target entity.Entity) bool {
	if c == nil || m == nil || c.state == stateActive {
		return false
	}
	c.begin(m, target)
	return true
}

// ForceBegin starts m, cancelling whatever is running first.
func (c *Controller) ForceBegin(m *MoveAction, target entity.Entity) {
	if c == nil || m == nil {
		return
	}
	if c.state == stateActive {
		prev := c.action
		prev.Cancel(c.owner)
		c.clear()
		if c.OnCancel != nil {
			c.OnCancel(prev)
		}
		c.owner.SwitchAction(prev, m)
	}
	c.begin(m, target)
}

func (c *Controller) begin(m *MoveAction, target entity.Entity) {
	c.state = stateActive
	c.action = m
	c.owner.BeginAction(m)
	if c.action != m {
		// the owner's hook replaced or cancelled the action
		return
	}
	m.Begin(c.owner, target)
	if c.OnBegin != nil {
		c.OnBegin(m, target)
	}
	c.timer = timer.New(m.Duration())
}

// Perform advances the running action by dt of world time.
func (c *Controller) Perform(dt float64) {
	if c == nil || c.state != stateActive {
		return
	}
	m := c.action
	c.timer.Tick(dt * m.TimeSpeed())
	m.Perform(c.owner, common.Clamp01(c.timer.Normalized()))
	if c.action != m || !c.timer.Reached() {
		return
	}
	m.End(c.owner)
	c.clear()
	if c.OnEnd != nil {
		c.OnEnd(m)
	}
	c.owner.EndAction(m)
}

// RawCancel aborts the running action without ending it.
func (c *Controller) RawCancel() {
	if c == nil || c.state != stateActive {
		return
	}
	m := c.action
	m.Cancel(c.owner)
	c.clear()
	if c.OnCancel != nil {
		c.OnCancel(m)
	}
}

func (c *Controller) IsActioning() bool {
	return c != nil && c.state == stateActive
}

// Current returns the running action or nil.
func (c *Controller) Current() *MoveAction {
	if c == nil || c.state != stateActive {
		return nil
	}
	return c.action
}

// Progress is the running action's normalized time, 0 when idle.
func (c *Controller) Progress() float64 {
	if c == nil || c.state != stateActive {
		return 0
	}
	return common.Clamp01(c.timer.Normalized())
}

func (c *Controller) clear() {
	c.state = stateIdle
	c.action = nil
	c.timer.Reset()
}
