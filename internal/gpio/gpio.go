// Package gpio provides foot switch and LED access with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
package gpio

import "github.com/denybear/picovation/internal/pedal"

// Bank reads the foot switches and drives the indicator LED.
type Bank interface {
	// Read samples the requested switch lines and returns the pressed
	// set. Lines are wired active-low with pull-ups: a switch is pressed
	// when its line reads 0. Safe to call on every scheduler pass.
	Read(which pedal.Mask) (pedal.Mask, error)

	// SetLED drives the indicator LED.
	SetLED(on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering), matching the pedalboard wiring.
const (
	DefaultPinPrev  = 11
	DefaultPinPause = 12
	DefaultPinTempo = 13
	DefaultPinPlay  = 14
	DefaultPinNext  = 15
	DefaultPinLED   = 25
)

// Pins maps each pedal to its switch line plus the LED line.
type Pins struct {
	Prev  int
	Next  int
	Play  int
	Pause int
	Tempo int
	LED   int
}

// DefaultPins returns the pedalboard's stock wiring.
func DefaultPins() Pins {
	return Pins{
		Prev:  DefaultPinPrev,
		Next:  DefaultPinNext,
		Play:  DefaultPinPlay,
		Pause: DefaultPinPause,
		Tempo: DefaultPinTempo,
		LED:   DefaultPinLED,
	}
}
