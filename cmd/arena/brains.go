package main

import (
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/script"
)

// brainBank hands each pool slot its own clone of the enemy script and
// swaps every clone when the script is reloaded.
type brainBank struct {
	base    *script.Brain
	version int
}

func (b *brainBank) swap(next *script.Brain) {
	b.base = next
	b.version++
}

// forSlot is the director's brain factory.
func (b *brainBank) forSlot(int) agent.Brain {
	if b == nil || b.base == nil {
		return nil
	}
	return &slotBrain{bank: b, version: -1}
}

type slotBrain struct {
	bank    *brainBank
	version int
	brain   *script.Brain
}

func (s *slotBrain) Decide(h agent.BrainHost) error {
	if s.version != s.bank.version {
		s.brain = s.bank.base.Clone()
		s.version = s.bank.version
	}
	return s.brain.Decide(h)
}
