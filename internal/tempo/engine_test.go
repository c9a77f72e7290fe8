package tempo

import (
	"math"
	"testing"
	"time"
)

var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewEngine(t *testing.T) {
	e := New()
	if e.Interval() != DefaultInterval {
		t.Errorf("expected default interval %v, got %v", DefaultInterval, e.Interval())
	}
	if e.Enabled() {
		t.Error("new engine should start with clock emission disabled")
	}
}

func TestFirstTapNeverAccepted(t *testing.T) {
	e := New()
	if e.Tap(base) {
		t.Error("first tap has no baseline and must be rejected")
	}
	if e.Interval() != DefaultInterval {
		t.Errorf("interval changed on first tap: %v", e.Interval())
	}
	if e.Enabled() {
		t.Error("clock must stay disabled after a single tap")
	}
}

func TestTapPairAccepted(t *testing.T) {
	e := New()
	e.Tap(base)

	// Two taps 480ms apart: 125 BPM, tick interval exactly 20ms.
	second := base.Add(480 * time.Millisecond)
	if !e.Tap(second) {
		t.Fatal("expected tap pair to be accepted")
	}
	if e.Interval() != 20*time.Millisecond {
		t.Errorf("expected interval 20ms, got %v", e.Interval())
	}
	if !e.Enabled() {
		t.Error("clock should be enabled after an accepted pair")
	}
}

func TestTapWindowBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		delta  time.Duration
		accept bool
	}{
		{"fastest accepted (just under 240 BPM)", TicksPerBeat * MinTickInterval, true},
		{"slowest accepted (40 BPM)", TicksPerBeat * MaxTickInterval, true},
		{"one tick interval too fast", TicksPerBeat*MinTickInterval - TicksPerBeat*time.Microsecond, false},
		{"one tick interval too slow", TicksPerBeat*MaxTickInterval + TicksPerBeat*time.Microsecond, false},
		{"double-triggered tap", 100 * time.Millisecond, false},
		{"forgotten pedal", 3 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.Tap(base)
			accepted := e.Tap(base.Add(tt.delta))
			if accepted != tt.accept {
				t.Fatalf("delta %v: accepted=%v, want %v", tt.delta, accepted, tt.accept)
			}
			if tt.accept {
				want := tt.delta / TicksPerBeat
				if e.Interval() != want {
					t.Errorf("expected interval %v, got %v", want, e.Interval())
				}
			} else {
				if e.Interval() != DefaultInterval {
					t.Errorf("rejected tap mutated interval: %v", e.Interval())
				}
				if e.Enabled() {
					t.Error("rejected tap enabled the clock")
				}
			}
		})
	}
}

func TestRejectedTapStillMovesBaseline(t *testing.T) {
	e := New()
	e.Tap(base)

	// Way too slow: rejected, but becomes the new baseline.
	slow := base.Add(5 * time.Second)
	if e.Tap(slow) {
		t.Fatal("expected slow tap to be rejected")
	}

	// A valid delta from the rejected tap is accepted.
	if !e.Tap(slow.Add(500 * time.Millisecond)) {
		t.Error("expected tap measured from the rejected baseline to be accepted")
	}
}

func TestMaybeTickDisabledByDefault(t *testing.T) {
	e := New()
	for i := 0; i < 5; i++ {
		if e.MaybeTick(base.Add(time.Duration(i) * time.Second)) {
			t.Fatal("disabled engine must never tick")
		}
	}
}

func TestMaybeTickSchedule(t *testing.T) {
	e := New()
	e.Tap(base)
	second := base.Add(480 * time.Millisecond) // interval 20ms
	if !e.Tap(second) {
		t.Fatal("tap pair not accepted")
	}

	if e.MaybeTick(second.Add(19 * time.Millisecond)) {
		t.Error("tick emitted before the deadline")
	}
	if !e.MaybeTick(second.Add(20 * time.Millisecond)) {
		t.Error("expected tick at the deadline")
	}
	// Same instant again: the deadline has already moved on.
	if e.MaybeTick(second.Add(20 * time.Millisecond)) {
		t.Error("second check at the same instant must not tick again")
	}
	if !e.MaybeTick(second.Add(40 * time.Millisecond)) {
		t.Error("expected tick at the following deadline")
	}
}

func TestMaybeTickLateDeadline(t *testing.T) {
	// A late poll emits one tick and schedules the next relative to the
	// poll time, not the missed deadline.
	e := New()
	e.Tap(base)
	second := base.Add(480 * time.Millisecond)
	e.Tap(second)

	late := second.Add(35 * time.Millisecond) // deadline was +20ms
	if !e.MaybeTick(late) {
		t.Fatal("expected tick on late poll")
	}
	if e.MaybeTick(late.Add(19 * time.Millisecond)) {
		t.Error("next deadline should be 20ms after the late tick")
	}
	if !e.MaybeTick(late.Add(20 * time.Millisecond)) {
		t.Error("expected tick 20ms after the late tick")
	}
}

func TestDisable(t *testing.T) {
	e := New()
	e.Tap(base)
	second := base.Add(500 * time.Millisecond)
	if !e.Tap(second) {
		t.Fatal("tap pair not accepted")
	}

	e.Disable()
	if e.Enabled() {
		t.Error("expected clock disabled")
	}
	if e.MaybeTick(second.Add(time.Hour)) {
		t.Error("disabled engine must not tick")
	}

	// The baseline is cleared too: two fresh taps required.
	resume := second.Add(10 * time.Second)
	if e.Tap(resume) {
		t.Error("first tap after disable must be rejected")
	}
	if !e.Tap(resume.Add(500 * time.Millisecond)) {
		t.Error("second tap after disable should be accepted")
	}
}

func TestBPM(t *testing.T) {
	e := New()
	e.Tap(base)
	if !e.Tap(base.Add(500 * time.Millisecond)) {
		t.Fatal("tap pair not accepted")
	}
	if got := e.BPM(); math.Abs(got-120) > 0.01 {
		t.Errorf("expected ~120 BPM, got %v", got)
	}

	e2 := New()
	e2.Tap(base)
	if !e2.Tap(base.Add(time.Second)) {
		t.Fatal("tap pair not accepted")
	}
	if got := e2.BPM(); math.Abs(got-60) > 0.01 {
		t.Errorf("expected ~60 BPM, got %v", got)
	}
}
