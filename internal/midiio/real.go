package midiio

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// rescanInterval is how often the port scans for device changes.
const rescanInterval = time.Second

// rxBufferChunks bounds how many inbound chunks are held between
// scheduler passes before the oldest are dropped.
const rxBufferChunks = 256

// excludedPatterns are virtual/system ports that are never auto-connected.
var excludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// RealPort maintains a hot-pluggable rtmidi connection to the groovebox:
// an output port for transport/clock bytes and, when the device exposes
// one, the matching input port for state mirroring.
type RealPort struct {
	mu        sync.Mutex
	drv       *rtmididrv.Driver
	out       drivers.Out
	in        drivers.In
	stopFn    func()
	name      string
	preferred []string
	lastScan  time.Time
	rx        *chunkBuffer
}

// NewRealPort creates a port that auto-connects to the first MIDI device
// whose name contains one of the preferred substrings (case-insensitive).
func NewRealPort(preferred []string) (*RealPort, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &RealPort{
		drv:       drv,
		preferred: preferred,
		rx:        newChunkBuffer(rxBufferChunks),
	}, nil
}

// Tick scans for device changes at most once per rescanInterval. It
// connects to a preferred device when none is attached and detects the
// active device disappearing.
func (p *RealPort) Tick(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lastScan.IsZero() && now.Sub(p.lastScan) < rescanInterval {
		return
	}
	p.lastScan = now

	outs, err := p.drv.Outs()
	if err != nil {
		log.Printf("midiio: list outputs failed: %v", err)
		return
	}

	if p.out != nil {
		for _, o := range outs {
			if o.String() == p.name {
				return // still there
			}
		}
		log.Printf("midiio: device disappeared: %s", p.name)
		p.disconnect()
		p.lastScan = time.Time{} // rescan immediately next tick
		return
	}

	cand, ok := p.pickPreferred(outs)
	if !ok {
		return
	}
	if err := p.connect(cand); err != nil {
		log.Printf("midiio: connect %s failed: %v", cand.String(), err)
	}
}

func (p *RealPort) pickPreferred(outs []drivers.Out) (drivers.Out, bool) {
	var usable []drivers.Out
	for _, o := range outs {
		if excluded(o.String()) {
			continue
		}
		usable = append(usable, o)
	}
	for _, pat := range p.preferred {
		for _, o := range usable {
			if containsCI(o.String(), pat) {
				return o, true
			}
		}
	}
	if len(usable) == 1 {
		return usable[0], true
	}
	return nil, false
}

func (p *RealPort) connect(out drivers.Out) error {
	if err := out.Open(); err != nil {
		return fmt.Errorf("open out %q: %w", out.String(), err)
	}
	p.out = out
	p.name = out.String()

	// Open the matching input, if the device exposes one, so groovebox
	// side changes flow back into local state.
	ins, err := p.drv.Ins()
	if err != nil {
		log.Printf("midiio: list inputs failed: %v", err)
	} else {
		for _, in := range ins {
			if in.String() != p.name {
				continue
			}
			if err := in.Open(); err != nil {
				log.Printf("midiio: open in %q failed: %v", in.String(), err)
				break
			}
			stop, err := midi.ListenTo(in, p.onMessage, midi.HandleError(func(listenErr error) {
				log.Printf("midiio: listener error on %s: %v", in.String(), listenErr)
			}))
			if err != nil {
				log.Printf("midiio: listen %q failed: %v", in.String(), err)
				_ = in.Close()
				break
			}
			p.in = in
			p.stopFn = stop
			break
		}
	}

	log.Printf("midiio: connected to %s (input=%v)", p.name, p.in != nil)
	return nil
}

// onMessage runs on the rtmidi listener goroutine; chunks are buffered
// and handed to the main loop via Drain.
func (p *RealPort) onMessage(msg midi.Message, _ int32) {
	chunk := make([]byte, len(msg))
	copy(chunk, msg)

	p.mu.Lock()
	p.rx.push(chunk)
	p.mu.Unlock()
}

func (p *RealPort) disconnect() {
	if p.stopFn != nil {
		p.stopFn()
		p.stopFn = nil
	}
	if p.in != nil {
		_ = p.in.Close()
		p.in = nil
	}
	if p.out != nil {
		_ = p.out.Close()
		p.out = nil
	}
	p.name = ""
}

// Send transmits raw bytes to the device. While disconnected the bytes
// are dropped and (0, nil) is returned.
func (p *RealPort) Send(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.out == nil {
		return 0, nil
	}
	if err := p.out.Send(data); err != nil {
		return 0, fmt.Errorf("send to %s: %w", p.name, err)
	}
	return len(data), nil
}

// Drain returns buffered inbound chunks, oldest first.
func (p *RealPort) Drain() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rx.drainAll()
}

// IsConnected reports whether an output port is attached.
func (p *RealPort) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out != nil
}

// PortName returns the connected port name, or "".
func (p *RealPort) PortName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Close shuts down the connection and the rtmidi driver.
func (p *RealPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnect()
	return p.drv.Close()
}

// ListOutPorts returns the names of all MIDI output ports visible to the
// driver, for the -list-ports mode.
func ListOutPorts() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	defer drv.Close()

	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	var names []string
	for _, o := range outs {
		names = append(names, o.String())
	}
	return names, nil
}

func excluded(name string) bool {
	for _, pat := range excludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
