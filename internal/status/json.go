package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Light         string       `json:"light"`
	Override      bool         `json:"override"`
	Hour          *int         `json:"hour"`
	Schedule      ScheduleJSON `json:"schedule"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	GPIOError     string       `json:"gpio_error,omitempty"`
	Counts        CountsJSON   `json:"event_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// ScheduleJSON describes the active window [on_hour, off_hour).
type ScheduleJSON struct {
	OnHour   int    `json:"on_hour"`
	OffHour  int    `json:"off_hour"`
	Timezone string `json:"timezone"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	LightOn     int `json:"light_on"`
	LightOff    int `json:"light_off"`
	OverrideOn  int `json:"override_on"`
	OverrideOff int `json:"override_off"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	Chip        string `json:"chip"`
	Pin         int    `json:"pin"`
	DryRun      bool   `json:"dry_run"`
}

func buildInner(snap Snapshot) StatusInner {
	light := string(snap.Light)
	if light == "" {
		light = "UNKNOWN"
	}

	inner := StatusInner{
		Light:    light,
		Override: snap.Override,
		Schedule: ScheduleJSON{
			OnHour:   snap.Config.OnHour,
			OffHour:  snap.Config.OffHour,
			Timezone: snap.Config.Timezone,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		GPIOError:     snap.GPIOError,
		Counts: CountsJSON{
			LightOn:     snap.Counts.LightOn,
			LightOff:    snap.Counts.LightOff,
			OverrideOn:  snap.Counts.OverrideOn,
			OverrideOff: snap.Counts.OverrideOff,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			Chip:        snap.Config.Chip,
			Pin:         snap.Config.Pin,
			DryRun:      snap.Config.DryRun,
		},
	}
	if snap.Hour >= 0 {
		h := snap.Hour
		inner.Hour = &h
	}
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
