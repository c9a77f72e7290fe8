// Package status provides a thread-safe status tracker for the
// picovation daemon. It is read by the HTTP status server and feeds the
// payloads of MQTT lifecycle events.
package status

import (
	"sync"
	"time"
)

// EventCounts tracks how many of each pedal/clock action fired since startup.
type EventCounts struct {
	Prev   int
	Next   int
	Play   int
	Pause  int
	Taps   int
	Clocks int
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	DebounceMs int64
	HoldMs     int64
	Device     string
	Broker     string
	HTTPAddr   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Song          uint8
	Playing       bool
	Paused        bool
	BPM           float64
	ClockRunning  bool
	MIDIConnected bool
	PortName      string
	Counts        EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the controller state. Called from the run loop on every pass.
func (t *Tracker) Update(song uint8, playing, paused bool, bpm float64, clockRunning bool, counts EventCounts) {
	t.mu.Lock()
	t.snap.Song = song
	t.snap.Playing = playing
	t.snap.Paused = paused
	t.snap.BPM = bpm
	t.snap.ClockRunning = clockRunning
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMIDIConnected sets the MIDI device connection status and port name.
func (t *Tracker) SetMIDIConnected(connected bool, portName string) {
	t.mu.Lock()
	t.snap.MIDIConnected = connected
	t.snap.PortName = portName
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
