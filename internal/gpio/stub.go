//go:build !linux

package gpio

import (
	"errors"

	"github.com/denybear/picovation/internal/pedal"
)

// RealBank is not available on non-Linux platforms.
type RealBank struct{}

// NewRealBank returns an error on non-Linux platforms.
func NewRealBank(pins Pins) (*RealBank, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (b *RealBank) Read(which pedal.Mask) (pedal.Mask, error) {
	return 0, errors.New("gpio: not supported")
}

// SetLED is not implemented on non-Linux platforms.
func (b *RealBank) SetLED(on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealBank) Close() error {
	return nil
}
