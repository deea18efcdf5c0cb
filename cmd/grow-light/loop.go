package main

import (
	"log"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/grow-light/internal/gpio"
	"github.com/sweeney/grow-light/internal/logic"
	"github.com/sweeney/grow-light/internal/metrics"
	"github.com/sweeney/grow-light/internal/mqtt"
	"github.com/sweeney/grow-light/internal/status"
)

// loop owns the switch. Every schedule evaluation and override runs on the
// goroutine that calls run.
type loop struct {
	sw         *logic.Switch
	line       gpio.Writer
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	commands   <-chan mqtt.Command
	overrides  <-chan struct{}
	tracker    *status.Tracker
	metrics    *metrics.Metrics
	heartbeat  time.Duration
	loc        *time.Location
	now        func() time.Time

	monitor *logic.Monitor
}

func (l *loop) run(tick <-chan time.Time, sig <-chan os.Signal) error {
	start := l.now()
	l.monitor = logic.NewMonitor(start)
	l.monitor.Observe(l.sw.State(), -1, start)

	startHour := l.hour(start)
	l.refresh(startHour)

	snap := l.tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  start,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := l.publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Evaluate immediately rather than waiting a full poll interval
	l.sw.UpdateLights(startHour)
	l.observe(start, startHour)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			l.shutdown(signalName(s))
			return nil

		case t := <-tick:
			h := l.hour(t)
			l.sw.UpdateLights(h)
			l.observe(t, h)

			if hb := l.monitor.CheckHeartbeat(t, l.heartbeat); hb != nil {
				l.publishHeartbeat(hb, h)
			}

		case cmd := <-l.commands:
			if cmd != mqtt.CommandOverride {
				log.Printf("ignoring command %q", cmd)
				continue
			}
			l.override("mqtt")

		case <-l.overrides:
			l.override("http")
		}
	}
}

func (l *loop) hour(t time.Time) int {
	return t.In(l.loc).Hour()
}

func (l *loop) override(source string) {
	t := l.now()
	h := l.hour(t)
	l.sw.OverrideLights(h)
	state := l.sw.State()
	log.Printf("override toggled via %s: light=%s override=%v hour=%d", source, logic.StateOf(state.Light), state.Override, h)
	l.observe(t, h)
}

// observe publishes any transitions since the last observation and refreshes
// the tracker and metrics.
func (l *loop) observe(t time.Time, hour int) {
	events := l.monitor.Observe(l.sw.State(), hour, t)
	for _, event := range events {
		log.Printf("event: %s (light=%s override=%v hour=%d)", event.Type, event.Light, event.Override, event.Hour)
		if err := l.publisher.Publish(event); err != nil {
			log.Printf("publish error: %v", err)
		}
	}
	l.metrics.RecordEvents(events)
	l.refresh(hour)
}

func (l *loop) refresh(hour int) {
	state := l.sw.State()
	l.tracker.Update(state, hour, l.monitor.EventCountsSnapshot())
	l.metrics.SetState(state, hour)
	l.tracker.SetGPIOError(l.line.Err())
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
}

func (l *loop) publishHeartbeat(hb *logic.HeartbeatData, hour int) {
	log.Printf("heartbeat: uptime=%v light_on=%d light_off=%d override_on=%d override_off=%d",
		hb.Uptime, hb.Counts.LightOn, hb.Counts.LightOff, hb.Counts.OverrideOn, hb.Counts.OverrideOff)

	// Refresh network info for heartbeat
	if net := readNetworkInfo(); net != nil {
		l.tracker.SetNetwork(net)
	}
	l.refresh(hour)

	event := mqtt.SystemEvent{
		Timestamp:  hb.Timestamp,
		Event:      "HEARTBEAT",
		RawPayload: status.FormatStatusEvent(l.tracker.Snapshot(), "HEARTBEAT", ""),
	}
	if err := l.publisher.PublishSystem(event); err != nil {
		log.Printf("heartbeat publish error: %v", err)
	}
}

func (l *loop) shutdown(reason string) {
	if l.mqttStatus != nil {
		l.tracker.SetMQTTConnected(l.mqttStatus.IsConnected())
	}
	event := mqtt.SystemEvent{
		Timestamp:  l.now(),
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(l.tracker.Snapshot(), "SHUTDOWN", reason),
	}
	if err := l.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
