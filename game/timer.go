package game

// TimerMode selects whether a Timer counts down from its duration or up from zero.
type TimerMode int

const (
	TimerCountdown TimerMode = iota
	TimerCountUp
)

// timerEpsilon absorbs float drift so 10 steps of 0.1 finish a 1.0 countdown
// on the same frame as one step of 1.0.
const timerEpsilon = 1e-9

// Timer is advanced with an explicit delta in seconds; it never reads the clock.
type Timer struct {
	Duration    float64
	TimeLeft    float64
	ElapsedTime float64
	Mode        TimerMode
	Loop        bool
	Active      bool
}

// NewTimer returns an inactive timer with the given settings.
func NewTimer(duration float64, mode TimerMode, loop bool) Timer {
	return Timer{Duration: max(duration, 0), Mode: mode, Loop: loop}
}

// Reset (re)starts the timer with new settings.
func (t *Timer) Reset(duration float64, mode TimerMode, loop bool) {
	t.Duration = max(duration, 0)
	t.Mode = mode
	t.Loop = loop
	t.Start()
}

// Start restarts the timer with its current settings.
func (t *Timer) Start() {
	t.TimeLeft = t.Duration
	t.ElapsedTime = 0
	t.Active = true
}

// Stop deactivates the timer without signalling.
func (t *Timer) Stop() {
	t.Active = false
}

// Update advances the timer by delta seconds and reports whether a cycle
// completed during this step.
func (t *Timer) Update(delta float64) bool {
	if !t.Active {
		return false
	}
	if delta < 0 {
		delta = 0
	}

	switch t.Mode {
	case TimerCountdown:
		t.ElapsedTime += delta
		t.TimeLeft -= delta
		if t.TimeLeft > timerEpsilon {
			return false
		}
		if t.Loop && t.Duration > 0 {
			for t.TimeLeft <= timerEpsilon {
				t.TimeLeft += t.Duration
			}
			t.ElapsedTime = t.Duration - t.TimeLeft
		} else {
			t.TimeLeft = 0
			t.Active = false
		}
		return true

	case TimerCountUp:
		t.ElapsedTime += delta
		if !t.Loop || t.Duration <= 0 {
			return false
		}
		if t.ElapsedTime+timerEpsilon < t.Duration {
			return false
		}
		for t.ElapsedTime+timerEpsilon >= t.Duration {
			t.ElapsedTime -= t.Duration
		}
		t.ElapsedTime = max(t.ElapsedTime, 0)
		return true
	}
	return false
}

// Progress returns the completed fraction of the current cycle in [0, 1].
func (t *Timer) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}
	var p float64
	if t.Mode == TimerCountdown {
		p = 1 - t.TimeLeft/t.Duration
	} else {
		p = t.ElapsedTime / t.Duration
	}
	return min(max(p, 0), 1)
}
