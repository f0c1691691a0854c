package timer

// Timer tracks elapsed time against a target. It is advanced explicitly by
// the owning system; it never reads a wall clock.
type Timer struct {
	Target  float64
	Elapsed float64
}

// New creates a Timer with the given target time.
func New(target float64) Timer {
	return Timer{Target: target}
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt float64) {
	if t == nil {
		return
	}
	t.Elapsed += dt
}

// Reset rewinds the timer to zero elapsed time.
func (t *Timer) Reset() {
	if t == nil {
		return
	}
	t.Elapsed = 0
}

// SetTarget changes the target without touching elapsed time.
func (t *Timer) SetTarget(target float64) {
	if t == nil {
		return
	}
	t.Target = target
}

// Reached reports whether elapsed time has met the target.
func (t *Timer) Reached() bool {
	return t != nil && t.Elapsed >= t.Target
}

// Normalized returns elapsed/target. A non-positive target counts as done.
func (t *Timer) Normalized() float64 {
	if t == nil || t.Target <= 0 {
		return 1
	}
	return t.Elapsed / t.Target
}

// SubtractTargetTime re-arms a periodic timer while keeping any overshoot.
func (t *Timer) SubtractTargetTime() {
	if t == nil {
		return
	}
	t.Elapsed -= t.Target
	if t.Elapsed < 0 {
		t.Elapsed = 0
	}
}
