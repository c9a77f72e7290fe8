// Package midiio provides the MIDI connection to the groovebox with
// abstraction for testing. The real implementation drives a USB MIDI
// device through rtmidi; the fake implementation records traffic.
package midiio

import "time"

// Port is the byte-level MIDI connection to the groovebox.
type Port interface {
	// Send transmits raw MIDI bytes and returns how many were written.
	// While no device is connected the bytes are silently dropped and
	// (0, nil) is returned: local state keeps updating, the stream is
	// lossy by design.
	Send(data []byte) (int, error)

	// Drain returns any inbound MIDI chunks received since the last
	// call, oldest first.
	Drain() [][]byte

	// IsConnected reports whether a device is currently attached.
	IsConnected() bool

	// PortName returns the name of the connected port, or "".
	PortName() string

	// Tick services connection housekeeping (device scan, hot-plug).
	// Called once per scheduler pass.
	Tick(now time.Time)

	// Close releases the MIDI driver.
	Close() error
}
