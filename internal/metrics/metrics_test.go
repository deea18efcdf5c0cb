package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sweeney/grow-light/internal/logic"
)

func TestSetState(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.SetState(logic.SwitchState{Light: true, Override: false}, 9)

	if v := testutil.ToFloat64(m.lightOn); v != 1 {
		t.Errorf("light_on: got %v, want 1", v)
	}
	if v := testutil.ToFloat64(m.override); v != 0 {
		t.Errorf("override_active: got %v, want 0", v)
	}
	if v := testutil.ToFloat64(m.hour); v != 9 {
		t.Errorf("current_hour: got %v, want 9", v)
	}

	m.SetState(logic.SwitchState{Light: false, Override: true}, 10)

	if v := testutil.ToFloat64(m.lightOn); v != 0 {
		t.Errorf("light_on: got %v, want 0", v)
	}
	if v := testutil.ToFloat64(m.override); v != 1 {
		t.Errorf("override_active: got %v, want 1", v)
	}
}

func TestRecordEvents(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.RecordEvents([]logic.Event{
		{Type: logic.EventLightOn},
		{Type: logic.EventOverrideOn},
		{Type: logic.EventLightOff},
		{Type: logic.EventLightOn},
	})

	expected := `
# HELP growlight_events_total Total number of light and override transitions
# TYPE growlight_events_total counter
growlight_events_total{event="LIGHT_OFF"} 1
growlight_events_total{event="LIGHT_ON"} 2
growlight_events_total{event="OVERRIDE_ON"} 1
`
	if err := testutil.CollectAndCompare(m.events, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	m1, err := New(reg)
	if err != nil {
		t.Fatalf("first New: %v", err)
	}
	m2, err := New(reg)
	if err != nil {
		t.Fatalf("second New: %v", err)
	}

	m1.RecordEvents([]logic.Event{{Type: logic.EventLightOn}})
	m2.RecordEvents([]logic.Event{{Type: logic.EventLightOn}})

	if v := testutil.ToFloat64(m1.events.WithLabelValues("LIGHT_ON")); v != 2 {
		t.Errorf("expected shared counter at 2, got %v", v)
	}
}

func TestGatherNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.RecordEvents([]logic.Event{{Type: logic.EventLightOn}})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	got := map[string]bool{}
	for _, f := range families {
		got[f.GetName()] = true
	}
	for _, name := range []string{"growlight_light_on", "growlight_override_active", "growlight_current_hour", "growlight_events_total"} {
		if !got[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}
