package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/grow-light/internal/status"
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
	"hour": func(h int) string {
		if h < 0 {
			return "-"
		}
		return fmt.Sprintf("%02d:00", h)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Grow Light</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.error { color: red; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Grow Light</h1>

<h2>State</h2>
<table>
<tr><th>Light</th><td id="light-state" class="{{if eq .LightText "ON"}}on{{else if eq .LightText "OFF"}}off{{else}}unknown{{end}}">{{.LightText}}</td></tr>
<tr><th>Override</th><td>{{if .Override}}active{{else}}off{{end}}</td></tr>
<tr><th>Schedule</th><td>{{hour .Config.OnHour}} to {{hour .Config.OffHour}}{{if .Config.Timezone}} ({{.Config.Timezone}}){{end}}</td></tr>
<tr><th>Last evaluated</th><td>{{hour .Hour}}</td></tr>
{{if .GPIOError}}<tr><th>Output error</th><td id="gpio-error" class="error">{{.GPIOError}}</td></tr>
{{end}}</table>
<form method="post" action="/override"><input type="hidden" name="from" value="ui"><button type="submit">{{if .Override}}Resume schedule{{else}}Override{{end}}</button></form>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Light ON</th><td>{{.Counts.LightOn}}</td></tr>
<tr><th>Light OFF</th><td>{{.Counts.LightOff}}</td></tr>
<tr><th>Override ON</th><td>{{.Counts.OverrideOn}}</td></tr>
<tr><th>Override OFF</th><td>{{.Counts.OverrideOff}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Output</th><td>{{if .Config.DryRun}}dry run{{else}}{{.Config.Chip}} pin {{.Config.Pin}}{{end}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> | <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	light := string(snap.Light)
	if light == "" {
		light = "UNKNOWN"
	}
	data := struct {
		status.Snapshot
		Uptime    time.Duration
		LightText string
	}{
		Snapshot:  snap,
		Uptime:    snap.Uptime(),
		LightText: light,
	}
	return indexTmpl.Execute(w, data)
}
