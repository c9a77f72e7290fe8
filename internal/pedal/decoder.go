package pedal

import "time"

// Decoder turns raw switch samples into edge-triggered pedal events.
// After every edge it opens a fixed hold-off window during which further
// samples are ignored, suppressing mechanical switch bounce. The decoder
// never sleeps; the caller keeps polling on its normal cadence so that
// clock emission is never delayed by a debounce wait.
type Decoder struct {
	debounce time.Duration
	prevMask Mask
	prevEdge time.Time
	holdOff  time.Time
}

// NewDecoder creates a Decoder with the given debounce hold-off duration.
func NewDecoder(debounce time.Duration) *Decoder {
	return &Decoder{debounce: debounce}
}

// Poll processes one raw switch sample taken at now and returns the event
// for this scheduler pass. Within the hold-off window the pre-edge mask is
// reported and no new edge is detected.
//
// The first poll has a zero edge baseline, so TimeInState is effectively
// "time since boot"; tap tempo treats that as "no valid previous tap".
func (d *Decoder) Poll(mask Mask, now time.Time) Event {
	ev := Event{
		Mask:        d.prevMask,
		Time:        now,
		TimeInState: now.Sub(d.prevEdge),
	}

	if now.Before(d.holdOff) {
		// Still debouncing the last edge.
		return ev
	}

	ev.Mask = mask
	if mask != d.prevMask {
		ev.Changed = true
		ev.Previous = d.prevMask
		ev.TimeInState = now.Sub(d.prevEdge)
		d.prevEdge = now
		d.holdOff = now.Add(d.debounce)
	}
	d.prevMask = mask
	return ev
}

// Current returns the last debounced mask.
func (d *Decoder) Current() Mask {
	return d.prevMask
}
