// Package mqtt publishes controller telemetry with abstraction for
// testing. Events mirror what the pedalboard just did (session change,
// transport, tempo) so a stage rig can be monitored off-board.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for controller events.
const Topic = "midi/picovation/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "midi/picovation/system"

// EventType identifies what the controller just did.
type EventType string

const (
	EventSong     EventType = "SONG_CHANGE"
	EventPlay     EventType = "PLAY"
	EventStop     EventType = "STOP"
	EventContinue EventType = "CONTINUE"
	EventTempo    EventType = "TEMPO_CHANGE"
	EventClockOff EventType = "CLOCK_OFF"
)

// Event is a controller state change to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Song      uint8
	Playing   bool
	Paused    bool
	BPM       float64
	// Source is "pedal" for local presses, "midi" for inbound messages.
	Source string
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a controller event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Controller ControllerPayload `json:"controller"`
}

// ControllerPayload contains the controller event details.
type ControllerPayload struct {
	Timestamp string           `json:"timestamp"`
	Event     string           `json:"event"`
	Song      uint8            `json:"song"`
	Transport TransportPayload `json:"transport"`
	BPM       float64          `json:"bpm"`
	Source    string           `json:"source"`
}

// TransportPayload carries the play/pause flags.
type TransportPayload struct {
	Playing bool `json:"playing"`
	Paused  bool `json:"paused"`
}

// FormatPayload creates the JSON payload for a controller event.
func FormatPayload(event Event) ([]byte, error) {
	payload := Payload{
		Controller: ControllerPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Song:      event.Song,
			Transport: TransportPayload{
				Playing: event.Playing,
				Paused:  event.Paused,
			},
			BPM:    event.BPM,
			Source: event.Source,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
