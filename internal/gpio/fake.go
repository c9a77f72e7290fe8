package gpio

import (
	"errors"

	"github.com/denybear/picovation/internal/pedal"
)

// FakeBank is a test double that returns scripted switch samples.
type FakeBank struct {
	// Samples contains scripted pressed sets to return.
	// Each call to Read() consumes the next sample.
	Samples []pedal.Mask

	// index tracks current position in Samples
	index int

	// LEDWrites records every SetLED call.
	LEDWrites []bool

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeBank creates a FakeBank with the given samples.
func NewFakeBank(samples []pedal.Mask) *FakeBank {
	return &FakeBank{Samples: samples}
}

// Read returns the next scripted sample, filtered down to the requested
// switches. If samples are exhausted, returns the last sample repeatedly.
func (f *FakeBank) Read(which pedal.Mask) (pedal.Mask, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample & which, nil
}

// SetLED records the LED write.
func (f *FakeBank) SetLED(on bool) error {
	f.LEDWrites = append(f.LEDWrites, on)
	return nil
}

// Close marks the bank as closed.
func (f *FakeBank) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the bank to the beginning of samples.
func (f *FakeBank) Reset() {
	f.index = 0
	f.LEDWrites = nil
	f.Closed = false
}
