// Package tempo contains pure logic for the tap tempo clock engine.
// It derives a MIDI clock interval from the time between two pedal taps
// and decides when the next clock byte is due. Time is always injectable
// via time.Time parameters; the package never reads the wall clock.
package tempo

import "time"

const (
	// TicksPerBeat is the MIDI clock resolution: 24 ticks per quarter note.
	TicksPerBeat = 24

	// MinTickInterval is the tick interval at 240 BPM (250000us / 24).
	MinTickInterval = 10417 * time.Microsecond
	// MaxTickInterval is the tick interval at 40 BPM (1500000us / 24).
	MaxTickInterval = 62500 * time.Microsecond

	// DefaultInterval is the 120 BPM tick interval (0.5s beat / 24).
	DefaultInterval = 500 * time.Millisecond / TicksPerBeat

	// HoldToDisable is how long the tempo pedal must be held so that its
	// release switches clock emission off.
	HoldToDisable = 2 * time.Second
)

// Engine holds the tap tempo state. Clock emission starts disabled and is
// enabled by the first accepted pair of taps. The zero next-tick deadline
// means "disabled".
type Engine struct {
	interval time.Duration
	next     time.Time
	lastTick time.Time
	lastTap  time.Time
}

// New creates an Engine at the default 120 BPM interval with clock
// emission disabled.
func New() *Engine {
	return &Engine{interval: DefaultInterval}
}

// Tap registers a tempo pedal press at now and reports whether the tap
// pair was accepted. The candidate interval is the delta to the previous
// tap divided by TicksPerBeat; it is accepted only inside the
// [240 BPM, 40 BPM] window. A rejected tap (including the first tap, whose
// baseline is zero) leaves the interval and deadline untouched but still
// becomes the baseline for the next tap.
func (e *Engine) Tap(now time.Time) bool {
	accepted := false
	if !e.lastTap.IsZero() {
		candidate := now.Sub(e.lastTap) / TicksPerBeat
		if candidate >= MinTickInterval && candidate <= MaxTickInterval {
			e.interval = candidate
			e.next = now.Add(candidate)
			accepted = true
		}
	}
	e.lastTap = now
	return accepted
}

// MaybeTick reports whether a clock byte is due at now and, if so,
// schedules the following one. Calling it again before the next deadline
// is a no-op, so it is safe to poll on every scheduler pass.
func (e *Engine) MaybeTick(now time.Time) bool {
	if e.next.IsZero() || now.Before(e.next) {
		return false
	}
	e.lastTick = now
	e.next = now.Add(e.interval)
	return true
}

// Disable switches clock emission off and clears the tap baseline, so two
// fresh taps are needed to resume.
func (e *Engine) Disable() {
	e.next = time.Time{}
	e.lastTap = time.Time{}
}

// Enabled reports whether clock emission is currently scheduled.
func (e *Engine) Enabled() bool {
	return !e.next.IsZero()
}

// Interval returns the current inter-tick interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// BPM returns the tempo implied by the current interval.
func (e *Engine) BPM() float64 {
	beat := e.interval * TicksPerBeat
	if beat <= 0 {
		return 0
	}
	return float64(time.Minute) / float64(beat)
}
