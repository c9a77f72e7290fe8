package midiio

import "time"

// FakePort records outgoing traffic and serves scripted inbound chunks
// for test assertions.
type FakePort struct {
	// Sends contains every byte slice passed to Send while connected.
	Sends [][]byte

	// Inbound chunks are returned (and cleared) by the next Drain call.
	Inbound [][]byte

	// Connected controls IsConnected and whether Send records bytes.
	Connected bool

	// Name is returned by PortName.
	Name string

	// ShortWriteBy, if > 0, makes Send report that many fewer bytes
	// than requested (still recording the full slice).
	ShortWriteBy int

	// SendError, if set, will be returned by Send.
	SendError error

	// Ticks counts Tick calls.
	Ticks int

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePort creates a connected FakePort.
func NewFakePort() *FakePort {
	return &FakePort{Connected: true, Name: "Fake Circuit"}
}

// Send records the bytes. While "disconnected" the bytes are dropped,
// matching the real port.
func (f *FakePort) Send(data []byte) (int, error) {
	if f.SendError != nil {
		return 0, f.SendError
	}
	if !f.Connected {
		return 0, nil
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	f.Sends = append(f.Sends, buf)

	n := len(data) - f.ShortWriteBy
	if n < 0 {
		n = 0
	}
	return n, nil
}

// Drain returns the queued inbound chunks and clears the queue.
func (f *FakePort) Drain() [][]byte {
	chunks := f.Inbound
	f.Inbound = nil
	return chunks
}

// IsConnected reports the scripted connection state.
func (f *FakePort) IsConnected() bool {
	return f.Connected
}

// PortName returns the scripted port name while connected.
func (f *FakePort) PortName() string {
	if !f.Connected {
		return ""
	}
	return f.Name
}

// Tick counts housekeeping calls.
func (f *FakePort) Tick(now time.Time) {
	f.Ticks++
}

// Close marks the port as closed.
func (f *FakePort) Close() error {
	f.Closed = true
	return nil
}

// SentBytes returns all recorded sends flattened into one stream.
func (f *FakePort) SentBytes() []byte {
	var all []byte
	for _, s := range f.Sends {
		all = append(all, s...)
	}
	return all
}
