package timer

// Ready is a cooldown gate. After Pop it stays not-ready until ReadyTime has
// elapsed (scaled by TimeScale), then invokes OnReady once.
type Ready struct {
	ReadyTime float64
	TimeScale float64
	OnReady   func()

	timer Timer
	ready bool
}

// NewReady creates a gate that starts ready.
func NewReady(readyTime float64) *Ready {
	return &Ready{ReadyTime: readyTime, TimeScale: 1, ready: true}
}

func (r *Ready) IsReady() bool {
	return r != nil && r.ready
}

// Pop consumes readiness. It returns false if the gate was not ready.
func (r *Ready) Pop() bool {
	if r == nil || !r.ready {
		return false
	}
	r.ready = false
	r.timer = New(r.ReadyTime)
	return true
}

// Tick advances the cooldown.
func (r *Ready) Tick(dt float64) {
	if r == nil || r.ready {
		return
	}
	scale := r.TimeScale
	if scale == 0 {
		scale = 1
	}
	r.timer.Tick(dt * scale)
	if !r.timer.Reached() {
		return
	}
	r.ready = true
	if r.OnReady != nil {
		r.OnReady()
	}
}

// Force marks the gate ready without firing OnReady.
func (r *Ready) Force() {
	if r == nil {
		return
	}
	r.ready = true
	r.timer.Reset()
}
