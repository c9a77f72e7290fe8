// Command picovation turns five foot switches into a MIDI controller for a
// hardware groovebox: session prev/next, play/stop, pause/continue, and a
// tap tempo engine that emits MIDI clock at the tapped cadence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denybear/picovation/internal/gpio"
	"github.com/denybear/picovation/internal/midiio"
	"github.com/denybear/picovation/internal/mqtt"
	"github.com/denybear/picovation/internal/pedal"
	"github.com/denybear/picovation/internal/session"
	"github.com/denybear/picovation/internal/status"
	"github.com/denybear/picovation/internal/tempo"
	"github.com/denybear/picovation/internal/web"
)

func main() {
	poll := flag.Duration("poll", time.Millisecond, "Switch polling interval")
	debounce := flag.Duration("debounce", 30*time.Millisecond, "Debounce hold-off after a pedal edge")
	hold := flag.Duration("hold", tempo.HoldToDisable, "Tempo pedal hold duration that disables the clock on release")
	device := flag.String("device", "Circuit", "MIDI port name substring to auto-connect to")
	broker := flag.String("broker", "", "MQTT broker address for telemetry (empty to disable)")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")
	pinPrev := flag.Int("pin-prev", gpio.DefaultPinPrev, "BCM pin number for the Prev pedal")
	pinNext := flag.Int("pin-next", gpio.DefaultPinNext, "BCM pin number for the Next pedal")
	pinPlay := flag.Int("pin-play", gpio.DefaultPinPlay, "BCM pin number for the Play pedal")
	pinPause := flag.Int("pin-pause", gpio.DefaultPinPause, "BCM pin number for the Pause pedal")
	pinTempo := flag.Int("pin-tempo", gpio.DefaultPinTempo, "BCM pin number for the Tempo pedal")
	pinLED := flag.Int("pin-led", gpio.DefaultPinLED, "BCM pin number for the indicator LED")
	listPorts := flag.Bool("list-ports", false, "List MIDI output ports and exit")

	flag.Parse()

	if *listPorts {
		names, err := midiio.ListOutPorts()
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	pins := gpio.Pins{
		Prev:  *pinPrev,
		Next:  *pinNext,
		Play:  *pinPlay,
		Pause: *pinPause,
		Tempo: *pinTempo,
		LED:   *pinLED,
	}

	if err := run(*poll, *debounce, *hold, *device, *broker, *httpAddr, pins); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll, debounce, hold time.Duration, device, broker, httpAddr string, pins gpio.Pins) error {
	// Initialize GPIO
	bank, err := gpio.NewRealBank(pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer bank.Close()

	// Initialize the MIDI port; connection to the groovebox happens
	// lazily from the run loop, so a missing device is not fatal.
	port, err := midiio.NewRealPort([]string{device, "Novation"})
	if err != nil {
		return fmt.Errorf("init midi: %w", err)
	}
	defer port.Close()

	// Initialize MQTT telemetry
	var publisher mqtt.Publisher = mqtt.NewNopPublisher()
	var mqttStatus mqtt.ConnectionStatus
	if broker != "" {
		real, err := mqtt.NewRealPublisher(broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher = real
		mqttStatus = real
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     poll.Milliseconds(),
		DebounceMs: debounce.Milliseconds(),
		HoldMs:     hold.Milliseconds(),
		Device:     device,
		Broker:     broker,
		HTTPAddr:   httpAddr,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v debounce=%v hold=%v device=%q", poll, debounce, hold, device)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	cfg := loopConfig{debounce: debounce, hold: hold}
	return runLoop(bank, port, publisher, mqttStatus, tracker, cfg, time.Now, ticker.C, sigCh)
}

// loopConfig carries the timing knobs of the run loop.
type loopConfig struct {
	debounce time.Duration
	hold     time.Duration
}

// runLoop is the single-threaded cooperative scheduler. Every pass it
// services the MIDI connection, polls the pedals, dispatches pedal events
// into transport state and outgoing bytes, checks the tempo engine, flushes
// the per-pass transmit buffer, and folds inbound MIDI back into state.
// Nothing in the loop blocks longer than one tick, so clock emission is
// never delayed by debounce waiting.
func runLoop(bank gpio.Bank, port midiio.Port, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg loopConfig, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	decoder := pedal.NewDecoder(cfg.debounce)
	engine := tempo.New()
	state := &session.State{}
	var counts status.EventCounts
	var tx []byte
	connected := false

	publish := func(t time.Time, typ mqtt.EventType, source string) {
		event := mqtt.Event{
			Timestamp: t,
			Type:      typ,
			Song:      state.Song,
			Playing:   state.Playing,
			Paused:    state.Paused,
			BPM:       engine.BPM(),
			Source:    source,
		}
		if err := publisher.Publish(event); err != nil {
			log.Printf("publish error: %v", err)
			// Don't crash on publish failure
		}
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			}
			return nil

		case <-tick:
			t := now()

			// Service the USB/MIDI side first, as the firmware loop does.
			port.Tick(t)
			if c := port.IsConnected(); c != connected {
				connected = c
				if connected {
					log.Printf("midi device connected: %s", port.PortName())
				} else {
					log.Printf("midi device disconnected")
				}
			}

			tx = tx[:0]

			raw, err := bank.Read(pedal.All)
			if err != nil {
				log.Printf("gpio read error: %v", err)
				// Fall through: an input fault must not stall the clock.
			} else {
				// The LED mirrors the raw pressed state on every poll.
				if err := bank.SetLED(raw != 0); err != nil {
					log.Printf("led write error: %v", err)
				}

				ev := decoder.Poll(raw, t)
				if ev.Changed {
					log.Printf("pedal edge: %s -> %s (in state %v)", ev.Previous, ev.Mask, ev.TimeInState.Truncate(time.Millisecond))

					// All matching branches fire when pedals are pressed
					// together; that ambiguity is accepted input, not an
					// error.
					if ev.Mask.Has(pedal.Next) {
						tx = append(tx, state.Next()...)
						counts.Next++
						publish(t, mqtt.EventSong, "pedal")
					}
					if ev.Mask.Has(pedal.Prev) {
						tx = append(tx, state.Prev()...)
						counts.Prev++
						publish(t, mqtt.EventSong, "pedal")
					}
					if ev.Mask.Has(pedal.Play) {
						tx = append(tx, state.TogglePlay()...)
						counts.Play++
						if state.Playing {
							publish(t, mqtt.EventPlay, "pedal")
						} else {
							publish(t, mqtt.EventStop, "pedal")
						}
					}
					if ev.Mask.Has(pedal.Pause) {
						tx = append(tx, state.TogglePause()...)
						counts.Pause++
						if state.Paused {
							publish(t, mqtt.EventContinue, "pedal")
						} else {
							publish(t, mqtt.EventStop, "pedal")
						}
					}
					if ev.Mask.Has(pedal.Tempo) {
						counts.Taps++
						if engine.Tap(t) {
							// Restart playback phase on the new grid.
							tx = append(tx, state.Realign()...)
							log.Printf("tempo: %.1f BPM", engine.BPM())
							publish(t, mqtt.EventTempo, "pedal")
						}
					}
					if ev.Mask == 0 && ev.Previous.Has(pedal.Tempo) && ev.TimeInState >= cfg.hold {
						// Tempo pedal held long enough: release switches
						// the clock off until two fresh taps.
						engine.Disable()
						log.Printf("tap tempo disabled (pedal held %v)", ev.TimeInState.Truncate(time.Millisecond))
						publish(t, mqtt.EventClockOff, "pedal")
					}
				}
			}

			// Clock check runs on every pass, debouncing or not.
			if engine.MaybeTick(t) {
				tx = append(tx, session.Clock)
				counts.Clocks++
			}

			// Flush the per-pass transmit buffer. While disconnected the
			// bytes are dropped; local state already moved on.
			if len(tx) > 0 && connected {
				n, err := port.Send(tx)
				if err != nil {
					log.Printf("midi send error: %v", err)
				} else if n < len(tx) {
					log.Printf("warning: dropped %d bytes", len(tx)-n)
				}
			}

			// Fold inbound groovebox traffic into local state.
			for _, chunk := range port.Drain() {
				before := *state
				state.Feed(chunk)
				if *state == before {
					continue
				}
				log.Printf("inbound: song=%d playing=%v paused=%v", state.Song, state.Playing, state.Paused)
				switch {
				case state.Song != before.Song:
					publish(t, mqtt.EventSong, "midi")
				case state.Playing && !before.Playing:
					publish(t, mqtt.EventPlay, "midi")
				case state.Paused && !before.Paused:
					publish(t, mqtt.EventContinue, "midi")
				default:
					publish(t, mqtt.EventStop, "midi")
				}
			}

			// Update status tracker for HTTP/MQTT consumers
			if tracker != nil {
				tracker.Update(state.Song, state.Playing, state.Paused, engine.BPM(), engine.Enabled(), counts)
				tracker.SetMIDIConnected(connected, port.PortName())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}
