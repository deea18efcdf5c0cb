// Package metrics exposes grow-light state as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/grow-light/internal/logic"
)

// Metrics holds the Prometheus collectors for the daemon.
type Metrics struct {
	lightOn  prometheus.Gauge
	override prometheus.Gauge
	hour     prometheus.Gauge
	events   *prometheus.CounterVec
}

// New registers the collectors on reg, or the default registerer if reg is
// nil. Collectors that are already registered are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		lightOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growlight_light_on",
			Help: "1 if the grow light is on",
		}),
		override: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growlight_override_active",
			Help: "1 if the schedule is manually overridden",
		}),
		hour: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "growlight_current_hour",
			Help: "Hour of day the schedule was last evaluated for",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "growlight_events_total",
			Help: "Total number of light and override transitions",
		}, []string{"event"}),
	}

	var err error
	if m.lightOn, err = register(reg, m.lightOn); err != nil {
		return nil, err
	}
	if m.override, err = register(reg, m.override); err != nil {
		return nil, err
	}
	if m.hour, err = register(reg, m.hour); err != nil {
		return nil, err
	}
	if m.events, err = register(reg, m.events); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// SetState records the current switch state and hour.
func (m *Metrics) SetState(state logic.SwitchState, hour int) {
	m.lightOn.Set(boolToFloat(state.Light))
	m.override.Set(boolToFloat(state.Override))
	m.hour.Set(float64(hour))
}

// RecordEvents increments the transition counter for each event.
func (m *Metrics) RecordEvents(events []logic.Event) {
	for _, e := range events {
		m.events.WithLabelValues(string(e.Type)).Inc()
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
