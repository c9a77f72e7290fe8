package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/denybear/picovation/internal/status"
)

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     1,
		DebounceMs: 30,
		HoldMs:     2000,
		HTTPAddr:   ":0",
	})
	tracker.Update(4, true, false, 120, true, status.EventCounts{Next: 2, Clocks: 48})
	tracker.SetMIDIConnected(true, "Circuit MIDI 1")

	srv := New(":0", tracker)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go srv.Serve(ln)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	return srv, fmt.Sprintf("http://%s", ln.Addr())
}

func TestIndexJSON(t *testing.T) {
	_, base := startTestServer(t)

	resp, err := http.Get(base + "/index.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %s", ct)
	}

	var parsed status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Song != 4 {
		t.Errorf("expected song 4, got %d", parsed.Status.Song)
	}
	if !parsed.Status.Playing {
		t.Error("expected playing")
	}
	if !parsed.Status.MIDI.Connected || parsed.Status.MIDI.Port != "Circuit MIDI 1" {
		t.Errorf("unexpected midi status: %+v", parsed.Status.MIDI)
	}
}

func TestIndexHTML(t *testing.T) {
	_, base := startTestServer(t)

	resp, err := http.Get(base + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)
	if !strings.Contains(html, "Picovation") {
		t.Error("page missing title")
	}
	if !strings.Contains(html, "PLAYING") {
		t.Error("page missing transport state")
	}
	if !strings.Contains(html, "Circuit MIDI 1") {
		t.Error("page missing port name")
	}
}

func TestUnknownPath(t *testing.T) {
	_, base := startTestServer(t)

	resp, err := http.Get(base + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
