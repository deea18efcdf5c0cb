// Command grow-light switches a grow light relay on an hour-of-day schedule
// and publishes state changes to MQTT.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sweeney/grow-light/internal/gpio"
	"github.com/sweeney/grow-light/internal/logic"
	"github.com/sweeney/grow-light/internal/metrics"
	"github.com/sweeney/grow-light/internal/mqtt"
	"github.com/sweeney/grow-light/internal/status"
	"github.com/sweeney/grow-light/internal/web"
)

type options struct {
	onHour    int
	offHour   int
	poll      time.Duration
	chip      string
	pin       int
	broker    string
	clientID  string
	heartbeat time.Duration
	httpAddr  string
	tz        string
	dryRun    bool
}

func main() {
	var o options
	flag.IntVar(&o.onHour, "on-hour", 8, "Hour the light switches on (inclusive)")
	flag.IntVar(&o.offHour, "off-hour", 20, "Hour the light switches off (exclusive)")
	flag.DurationVar(&o.poll, "poll", time.Minute, "Schedule evaluation interval")
	flag.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO chip name")
	flag.IntVar(&o.pin, "pin", gpio.DefaultPin, "BCM pin number of the relay (active low)")
	flag.StringVar(&o.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.StringVar(&o.clientID, "client-id", "grow-light", "MQTT client ID")
	flag.DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&o.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&o.tz, "tz", "Local", "Time zone used to derive the current hour")
	flag.BoolVar(&o.dryRun, "dry-run", false, "Log output changes instead of driving GPIO")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	loc, err := time.LoadLocation(o.tz)
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}

	// Initialize GPIO
	var line gpio.Writer
	if o.dryRun {
		line = gpio.NewLogLine(o.pin, nil)
	} else {
		rl, err := gpio.NewRealLine(o.chip, o.pin)
		if err != nil {
			return fmt.Errorf("init gpio: %w", err)
		}
		line = rl
	}
	defer func() {
		if err := line.Close(); err != nil {
			log.Printf("gpio close: %v", err)
		}
	}()

	for _, w := range scheduleWarnings(o.onHour, o.offHour) {
		log.Printf("warning: %s", w)
	}
	sw := logic.NewSwitch(line, o.onHour, o.offHour)

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(o.broker, o.clientID)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		OnHour:      o.onHour,
		OffHour:     o.offHour,
		Timezone:    loc.String(),
		PollMs:      o.poll.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		Broker:      o.broker,
		HTTPAddr:    o.httpAddr,
		Chip:        o.chip,
		Pin:         o.pin,
		DryRun:      o.dryRun,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	overrides := make(chan struct{}, 4)

	// Start HTTP status server
	if o.httpAddr != "" {
		srv := web.New(o.httpAddr, tracker, overrides, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", o.httpAddr)
	}

	log.Printf("started: window=[%d,%d) tz=%s poll=%v broker=%s heartbeat=%v", o.onHour, o.offHour, loc, o.poll, o.broker, o.heartbeat)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	l := &loop{
		sw:         sw,
		line:       line,
		publisher:  publisher,
		mqttStatus: publisher,
		commands:   publisher.Commands(),
		overrides:  overrides,
		tracker:    tracker,
		metrics:    m,
		heartbeat:  o.heartbeat,
		loc:        loc,
		now:        time.Now,
	}
	return l.run(ticker.C, sigCh)
}

// scheduleWarnings describes window configurations under which the schedule
// can never switch the light on, or never switch it off.
func scheduleWarnings(onHour, offHour int) []string {
	var warnings []string
	if !logic.AutoOnReachable(onHour, offHour) {
		warnings = append(warnings, fmt.Sprintf("window [%d,%d): no hour satisfies %d <= hour < %d, the schedule will never switch the light on", onHour, offHour, onHour, offHour))
	}
	if !logic.AutoOffReachable(onHour, offHour) {
		warnings = append(warnings, fmt.Sprintf("window [%d,%d): no hour satisfies hour < %d && hour >= %d, the schedule will never switch the light off", onHour, offHour, onHour, offHour))
	}
	return warnings
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
