//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/denybear/picovation/internal/pedal"
)

// RealBank reads switches from actual hardware using the Linux GPIO
// character device.
type RealBank struct {
	chip     *gpiocdev.Chip
	switches map[pedal.Mask]*gpiocdev.Line
	led      *gpiocdev.Line
}

// NewRealBank requests the switch lines as pulled-up inputs and the LED
// line as an output on gpiochip0.
func NewRealBank(pins Pins) (*RealBank, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealBank{
		chip:     chip,
		switches: make(map[pedal.Mask]*gpiocdev.Line),
	}

	for _, sw := range []struct {
		bit pedal.Mask
		pin int
	}{
		{pedal.Prev, pins.Prev},
		{pedal.Next, pins.Next},
		{pedal.Play, pins.Play},
		{pedal.Pause, pins.Pause},
		{pedal.Tempo, pins.Tempo},
	} {
		line, err := chip.RequestLine(sw.pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", sw.bit, sw.pin, err)
		}
		b.switches[sw.bit] = line
	}

	led, err := chip.RequestLine(pins.LED, gpiocdev.AsOutput(0))
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pins.LED, err)
	}
	b.led = led

	return b, nil
}

// Read samples the requested switch lines. A line reading 0 means the
// switch is pressed (active-low, pull-up wiring).
func (b *RealBank) Read(which pedal.Mask) (pedal.Mask, error) {
	var pressed pedal.Mask
	for bit, line := range b.switches {
		if which&bit == 0 {
			continue
		}
		raw, err := line.Value()
		if err != nil {
			return 0, fmt.Errorf("read %s pin: %w", bit, err)
		}
		if raw == 0 {
			pressed |= bit
		}
	}
	return pressed, nil
}

// SetLED drives the indicator LED line.
func (b *RealBank) SetLED(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := b.led.SetValue(v); err != nil {
		return fmt.Errorf("set LED: %w", err)
	}
	return nil
}

// Close releases all requested lines and the chip. The LED is blanked
// first so a stale "pressed" indication does not survive the process.
func (b *RealBank) Close() error {
	var errs []error
	for bit, line := range b.switches {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", bit, err))
		}
	}
	if b.led != nil {
		if err := b.led.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("blank LED: %w", err))
		}
		if err := b.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
