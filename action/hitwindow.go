package action

// Window is the fraction of an action's progress during which the hitbox is
// live.
type Window struct {
	Enable  float64
	Disable float64
}

// WindowPhase is the progression of a HitWindow within one attack.
type WindowPhase int

const (
	PhaseArmed WindowPhase = iota
	PhaseEnabled
	PhaseEnded
)

func (p WindowPhase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseEnabled:
		return "enabled"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// HitWindow switches a hitbox on once and off once per armed cycle.
type HitWindow struct {
	hitbox *Hitbox
	phase  WindowPhase
}

func NewHitWindow(hb *Hitbox) HitWindow {
	return HitWindow{hitbox: hb}
}

// Tick advances the window with the owning action's normalized progress t.
// Both edges may be crossed in one call, in which case the hitbox is never
// observed on.
func (w *HitWindow) Tick(cfg Window, t float64) {
	if w.phase == PhaseArmed && t > cfg.Enable {
		w.phase = PhaseEnabled
		w.hitbox.SetActive(true)
	}
	if w.phase == PhaseEnabled && t > cfg.Disable {
		w.phase = PhaseEnded
		w.hitbox.SetActive(false)
	}
}

// Reset re-arms the window for a new attack.
func (w *HitWindow) Reset() {
	w.phase = PhaseArmed
	w.hitbox.SetActive(false)
}

// Cancel forces the hitbox off whatever the phase.
func (w *HitWindow) Cancel() {
	w.phase = PhaseEnded
	w.hitbox.SetActive(false)
}

func (w *HitWindow) Phase() WindowPhase {
	return w.phase
}

func (w *HitWindow) Hitbox() *Hitbox {
	return w.hitbox
}
