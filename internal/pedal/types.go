// Package pedal contains pure logic for decoding foot switch input into
// discrete pedal events. This package has NO external dependencies (no GPIO,
// MIDI, OS, or time.Sleep). Time is always injectable via time.Time parameters.
package pedal

import (
	"strings"
	"time"
)

// Mask is a bit set of pressed pedals.
type Mask uint8

const (
	Prev  Mask = 1 << iota // previous session
	Next                   // next session
	Play                   // play / stop
	Pause                  // pause / continue
	Tempo                  // tap tempo
)

// All selects every configured pedal.
const All = Prev | Next | Play | Pause | Tempo

// Has reports whether every pedal in which is set in m.
func (m Mask) Has(which Mask) bool {
	return m&which != 0
}

// String returns a "+"-joined list of pressed pedal names, or "none".
func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	var names []string
	for _, p := range []struct {
		bit  Mask
		name string
	}{
		{Prev, "PREV"},
		{Next, "NEXT"},
		{Play, "PLAY"},
		{Pause, "PAUSE"},
		{Tempo, "TEMPO"},
	} {
		if m&p.bit != 0 {
			names = append(names, p.name)
		}
	}
	return strings.Join(names, "+")
}

// Event is the result of one decoder poll.
type Event struct {
	// Mask is the debounced pressed set for this poll.
	Mask Mask
	// Previous is the pressed set before the most recent edge. Only
	// meaningful when Changed is true.
	Previous Mask
	// Changed is true only on the poll where Mask differs from the
	// previous poll's mask (edge-triggered).
	Changed bool
	// Time is the poll timestamp.
	Time time.Time
	// TimeInState is the elapsed time since the previous edge. On a
	// release edge this is how long the released pedal was held.
	TimeInState time.Duration
}
