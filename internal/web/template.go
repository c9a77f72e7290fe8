package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/denybear/picovation/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"bpm": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	"transport": func(playing, paused bool) string {
		switch {
		case playing:
			return "PLAYING"
		case paused:
			return "PAUSED"
		default:
			return "STOPPED"
		}
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Picovation</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.playing { color: green; font-weight: bold; }
.paused { color: orange; font-weight: bold; }
.stopped { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Picovation</h1>
<table>
<tr><th>Session</th><td>{{.Song}}</td></tr>
<tr><th>Transport</th><td class="{{if .Playing}}playing{{else if .Paused}}paused{{else}}stopped{{end}}">{{transport .Playing .Paused}}</td></tr>
<tr><th>Tempo</th><td>{{bpm .BPM}} BPM{{if not .ClockRunning}} (clock off){{end}}</td></tr>
<tr><th>MIDI device</th><td class="{{if .MIDIConnected}}connected{{else}}disconnected{{end}}">{{if .MIDIConnected}}{{.PortName}}{{else}}disconnected{{end}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
</table>
<table>
<tr><th>Prev presses</th><td>{{.Counts.Prev}}</td></tr>
<tr><th>Next presses</th><td>{{.Counts.Next}}</td></tr>
<tr><th>Play presses</th><td>{{.Counts.Play}}</td></tr>
<tr><th>Pause presses</th><td>{{.Counts.Pause}}</td></tr>
<tr><th>Tempo taps</th><td>{{.Counts.Taps}}</td></tr>
<tr><th>Clock ticks</th><td>{{.Counts.Clocks}}</td></tr>
</table>
<table>
<tr><th>Poll</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}} ms</td></tr>
<tr><th>Tap hold-off</th><td>{{.Config.HoldMs}} ms</td></tr>
{{if .Config.Device}}<tr><th>Device match</th><td>{{.Config.Device}}</td></tr>{{end}}
{{if .Config.Broker}}<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{end}}
</table>
<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

type indexData struct {
	status.Snapshot
	Uptime time.Duration
}

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := indexData{Snapshot: snap, Uptime: snap.Uptime()}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
