package status

import (
	"encoding/json"
	"math"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Song          uint8      `json:"song"`
	Playing       bool       `json:"playing"`
	Paused        bool       `json:"paused"`
	BPM           float64    `json:"bpm"`
	ClockRunning  bool       `json:"clock_running"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MIDI          MIDIStatus `json:"midi"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MIDIStatus reports MIDI device connection state.
type MIDIStatus struct {
	Connected bool   `json:"connected"`
	Port      string `json:"port,omitempty"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker,omitempty"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Prev   int `json:"prev"`
	Next   int `json:"next"`
	Play   int `json:"play"`
	Pause  int `json:"pause"`
	Taps   int `json:"taps"`
	Clocks int `json:"clocks"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	HoldMs     int64  `json:"hold_ms"`
	Device     string `json:"device,omitempty"`
	Broker     string `json:"broker,omitempty"`
	HTTPAddr   string `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Song:          snap.Song,
		Playing:       snap.Playing,
		Paused:        snap.Paused,
		BPM:           math.Round(snap.BPM*10) / 10,
		ClockRunning:  snap.ClockRunning,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MIDI:          MIDIStatus{Connected: snap.MIDIConnected, Port: snap.PortName},
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Prev:   snap.Counts.Prev,
			Next:   snap.Counts.Next,
			Play:   snap.Counts.Play,
			Pause:  snap.Counts.Pause,
			Taps:   snap.Counts.Taps,
			Clocks: snap.Counts.Clocks,
		},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			DebounceMs: snap.Config.DebounceMs,
			HoldMs:     snap.Config.HoldMs,
			Device:     snap.Config.Device,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}
}

// FormatStatus returns the JSON status document for the snapshot.
func FormatStatus(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status document annotated with a
// lifecycle event name and reason, used as MQTT system event payloads.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}
