// Package session contains pure logic for the groovebox transport state:
// the selected session slot, the play/pause flags, and the exact MIDI bytes
// that drive them. It also interprets inbound MIDI traffic so local state
// follows changes made on the groovebox itself.
package session

// MIDI wire values understood by the groovebox.
const (
	Clock         = 0xF8 // timing tick, 24 per quarter note
	Start         = 0xFA
	Continue      = 0xFB
	Stop          = 0xFC
	ProgramChange = 0xCF // program change status on MIDI channel 16

	// MaxSong is the highest session slot; slots wrap within [0, MaxSong].
	MaxSong = 31
)

// State tracks the transport flags and the current session slot.
// Playing and Paused are never both true: every transition clears one
// before setting the other.
type State struct {
	Playing bool
	Paused  bool
	Song    uint8
}

// Next advances to the next session slot, wrapping after MaxSong, and
// returns the program change bytes to transmit.
func (s *State) Next() []byte {
	if s.Song == MaxSong {
		s.Song = 0
	} else {
		s.Song++
	}
	return []byte{ProgramChange, s.Song}
}

// Prev steps back to the previous session slot, wrapping below zero, and
// returns the program change bytes to transmit.
func (s *State) Prev() []byte {
	if s.Song == 0 {
		s.Song = MaxSong
	} else {
		s.Song--
	}
	return []byte{ProgramChange, s.Song}
}

// TogglePlay handles the play pedal: stop when playing or paused,
// start otherwise.
func (s *State) TogglePlay() []byte {
	if s.Playing || s.Paused {
		s.Playing = false
		s.Paused = false
		return []byte{Stop}
	}
	s.Playing = true
	return []byte{Start}
}

// TogglePause handles the pause pedal: stop when playing or paused,
// continue otherwise.
func (s *State) TogglePause() []byte {
	if s.Playing || s.Paused {
		s.Playing = false
		s.Paused = false
		return []byte{Stop}
	}
	s.Paused = true
	return []byte{Continue}
}

// Realign returns the bytes sent after an accepted tempo tap: a stop, and
// a continue when playback was running, so the groovebox restarts its beat
// phase on the new clock grid without dropping out of playback.
func (s *State) Realign() []byte {
	if s.Playing || s.Paused {
		return []byte{Stop, Continue}
	}
	return []byte{Stop}
}
