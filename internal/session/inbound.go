package session

// Feed folds one inbound MIDI chunk into the state. It recognizes the
// transport realtime bytes and channel-16 program changes by exact match
// and advances by a length derived from the status nibble of the current
// byte. Running status or a malformed stream can misalign the scan, so
// the program change value is bounds-checked before being accepted.
func (s *State) Feed(buf []byte) {
	i := 0
	for i < len(buf) {
		switch buf[i] {
		case Start:
			s.Playing = true
			s.Paused = false
		case Continue:
			s.Paused = true
			s.Playing = false
		case Stop:
			s.Playing = false
			s.Paused = false
		case ProgramChange:
			if i+1 < len(buf) && buf[i+1] <= MaxSong {
				s.Song = buf[i+1]
			}
		}

		switch buf[i] & 0xF0 {
		case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
			i += 3
		case 0xC0, 0xD0:
			i += 2
		default:
			// System bytes (0xF0-0xFF) and anything unrecognized.
			i++
		}
	}
}
