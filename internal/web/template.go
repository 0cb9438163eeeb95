package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/button-led/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"stateOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Button/LED Panel</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Button/LED Panel</h1>

<h2>State</h2>
<table>
<tr><th>LED</th><td class="{{if eq (stateOrUnknown (printf "%s" .LED)) "ON"}}on{{else if eq (stateOrUnknown (printf "%s" .LED)) "OFF"}}off{{else}}unknown{{end}}">{{stateOrUnknown (printf "%s" .LED)}}</td></tr>
<tr><th>Button</th><td>{{stateOrUnknown (printf "%s" .Button)}}</td></tr>
<tr><th>Releases</th><td>{{.Releases}} / {{.Config.ReleasesToDone}}</td></tr>
<tr><th>Done</th><td>{{if .Done}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>LED On</th><td>{{.Counts.LEDOn}}</td></tr>
<tr><th>LED Off</th><td>{{.Counts.LEDOff}}</td></tr>
<tr><th>Button Press</th><td>{{.Counts.Press}}</td></tr>
<tr><th>Button Release</th><td>{{.Counts.Release}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{else}}<tr><th>MQTT</th><td>disabled</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceSamples}} samples</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/status.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
