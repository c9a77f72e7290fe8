package session

import (
	"bytes"
	"testing"
)

func TestNextAdvancesAndWraps(t *testing.T) {
	s := &State{}

	msg := s.Next()
	if !bytes.Equal(msg, []byte{ProgramChange, 1}) {
		t.Errorf("expected [CF 01], got % X", msg)
	}
	if s.Song != 1 {
		t.Errorf("expected song 1, got %d", s.Song)
	}

	s.Song = MaxSong
	msg = s.Next()
	if !bytes.Equal(msg, []byte{ProgramChange, 0}) {
		t.Errorf("expected wrap to [CF 00], got % X", msg)
	}
	if s.Song != 0 {
		t.Errorf("expected song 0 after wrap, got %d", s.Song)
	}
}

func TestPrevStepsBackAndWraps(t *testing.T) {
	s := &State{Song: 5}

	msg := s.Prev()
	if !bytes.Equal(msg, []byte{ProgramChange, 4}) {
		t.Errorf("expected [CF 04], got % X", msg)
	}

	s.Song = 0
	msg = s.Prev()
	if !bytes.Equal(msg, []byte{ProgramChange, 31}) {
		t.Errorf("expected wrap to [CF 1F], got % X", msg)
	}
	if s.Song != MaxSong {
		t.Errorf("expected song 31 after wrap, got %d", s.Song)
	}
}

func TestTogglePlay(t *testing.T) {
	s := &State{}

	msg := s.TogglePlay()
	if !bytes.Equal(msg, []byte{Start}) {
		t.Errorf("expected [FA], got % X", msg)
	}
	if !s.Playing || s.Paused {
		t.Errorf("expected playing=true paused=false, got %+v", s)
	}

	msg = s.TogglePlay()
	if !bytes.Equal(msg, []byte{Stop}) {
		t.Errorf("expected [FC], got % X", msg)
	}
	if s.Playing || s.Paused {
		t.Errorf("expected both flags false, got %+v", s)
	}
}

func TestTogglePlayStopsFromPause(t *testing.T) {
	s := &State{Paused: true}

	msg := s.TogglePlay()
	if !bytes.Equal(msg, []byte{Stop}) {
		t.Errorf("expected [FC], got % X", msg)
	}
	if s.Playing || s.Paused {
		t.Errorf("expected both flags false, got %+v", s)
	}
}

func TestTogglePause(t *testing.T) {
	s := &State{}

	msg := s.TogglePause()
	if !bytes.Equal(msg, []byte{Continue}) {
		t.Errorf("expected [FB], got % X", msg)
	}
	if s.Playing || !s.Paused {
		t.Errorf("expected playing=false paused=true, got %+v", s)
	}

	msg = s.TogglePause()
	if !bytes.Equal(msg, []byte{Stop}) {
		t.Errorf("expected [FC], got % X", msg)
	}
	if s.Playing || s.Paused {
		t.Errorf("expected both flags false, got %+v", s)
	}
}

func TestTogglePauseStopsFromPlay(t *testing.T) {
	s := &State{Playing: true}

	msg := s.TogglePause()
	if !bytes.Equal(msg, []byte{Stop}) {
		t.Errorf("expected [FC], got % X", msg)
	}
	if s.Playing || s.Paused {
		t.Errorf("expected both flags false, got %+v", s)
	}
}

// The play/pause flags must never be simultaneously true, whatever the
// pedal sequence.
func TestFlagsNeverBothTrue(t *testing.T) {
	s := &State{}
	ops := []func() []byte{s.TogglePlay, s.TogglePause, s.TogglePause, s.TogglePlay, s.TogglePlay, s.TogglePause}
	for i, op := range ops {
		op()
		if s.Playing && s.Paused {
			t.Fatalf("op %d: playing and paused both true", i)
		}
	}
}

func TestRealign(t *testing.T) {
	stopped := &State{}
	if msg := stopped.Realign(); !bytes.Equal(msg, []byte{Stop}) {
		t.Errorf("stopped: expected [FC], got % X", msg)
	}

	playing := &State{Playing: true}
	if msg := playing.Realign(); !bytes.Equal(msg, []byte{Stop, Continue}) {
		t.Errorf("playing: expected [FC FB], got % X", msg)
	}

	paused := &State{Paused: true}
	if msg := paused.Realign(); !bytes.Equal(msg, []byte{Stop, Continue}) {
		t.Errorf("paused: expected [FC FB], got % X", msg)
	}

	// Realign never mutates the flags; only the groovebox-side phase moves.
	if !playing.Playing || playing.Paused {
		t.Errorf("realign mutated state: %+v", playing)
	}
}
