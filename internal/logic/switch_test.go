package logic

import "testing"

// recordingLine records every level written to it.
type recordingLine struct {
	levels []Level
}

func (r *recordingLine) Set(level Level) {
	r.levels = append(r.levels, level)
}

func (r *recordingLine) last() Level {
	return r.levels[len(r.levels)-1]
}

func TestNewSwitch(t *testing.T) {
	line := &recordingLine{}
	s := NewSwitch(line, 8, 20)

	if s.LightStatus() {
		t.Error("new switch should have light off")
	}
	if s.OverrideStatus() {
		t.Error("new switch should not be overridden")
	}
	if len(line.levels) != 1 {
		t.Fatalf("expected 1 write at construction, got %d", len(line.levels))
	}
	if line.levels[0] != LevelHigh {
		t.Errorf("expected construction to write HIGH (off), got %s", line.levels[0])
	}

	on, off := s.Window()
	if on != 8 || off != 20 {
		t.Errorf("expected window (8, 20), got (%d, %d)", on, off)
	}
}

func TestUpdateLightsTurnsOnInsideWindow(t *testing.T) {
	for h := 8; h < 20; h++ {
		line := &recordingLine{}
		s := NewSwitch(line, 8, 20)

		s.UpdateLights(h)

		if !s.LightStatus() {
			t.Errorf("hour %d: expected light on", h)
		}
		if line.last() != LevelLow {
			t.Errorf("hour %d: expected active level LOW, got %s", h, line.last())
		}
		if len(line.levels) != 2 {
			t.Errorf("hour %d: expected 2 writes, got %d", h, len(line.levels))
		}
	}
}

func TestUpdateLightsOutsideWindowStaysOff(t *testing.T) {
	hours := []int{0, 1, 5, 7, 20, 21, 23, -1, 24, 99}
	for _, h := range hours {
		line := &recordingLine{}
		s := NewSwitch(line, 8, 20)

		s.UpdateLights(h)

		if s.LightStatus() {
			t.Errorf("hour %d: expected light off", h)
		}
		if len(line.levels) != 1 {
			t.Errorf("hour %d: expected no write beyond construction, got %d writes", h, len(line.levels))
		}
	}
}

// The off trigger needs hour < onHour and hour >= offHour at the same time,
// which no hour satisfies for an 8-20 window. Once on, the schedule never
// turns the light off.
func TestUpdateLightsNeverTurnsOffForSameDayWindow(t *testing.T) {
	line := &recordingLine{}
	s := NewSwitch(line, 8, 20)
	s.UpdateLights(10)

	for h := -5; h < 48; h++ {
		s.UpdateLights(h)
		if !s.LightStatus() {
			t.Fatalf("hour %d: light turned off by the schedule", h)
		}
	}

	if len(line.levels) != 2 {
		t.Errorf("expected 2 writes (construct, on), got %d", len(line.levels))
	}
}

func TestUpdateLightsIdempotent(t *testing.T) {
	for h := 0; h < 24; h++ {
		once := NewSwitch(&recordingLine{}, 8, 20)
		once.UpdateLights(h)

		twiceLine := &recordingLine{}
		twice := NewSwitch(twiceLine, 8, 20)
		twice.UpdateLights(h)
		writes := len(twiceLine.levels)
		twice.UpdateLights(h)

		if once.LightStatus() != twice.LightStatus() {
			t.Errorf("hour %d: once=%v twice=%v", h, once.LightStatus(), twice.LightStatus())
		}
		if len(twiceLine.levels) != writes {
			t.Errorf("hour %d: second update wrote to the line", h)
		}
	}
}

func TestUpdateLightsIgnoredDuringOverride(t *testing.T) {
	line := &recordingLine{}
	s := NewSwitch(line, 8, 20)

	// Outside the window: override forces the light on
	s.OverrideLights(6)
	if !s.LightStatus() {
		t.Fatal("expected override to flip light on")
	}

	// Leave and re-enter override so the light is forced off
	s.OverrideLights(6) // leave
	s.OverrideLights(6) // re-enter: flips on -> off
	if s.LightStatus() {
		t.Fatal("expected override to flip light off")
	}
	writes := len(line.levels)

	for h := 0; h < 24; h++ {
		s.UpdateLights(h)
		if s.LightStatus() {
			t.Errorf("hour %d: schedule changed light during override", h)
		}
	}
	if len(line.levels) != writes {
		t.Errorf("expected no writes during override, got %d extra", len(line.levels)-writes)
	}
}

func TestOverrideScenario(t *testing.T) {
	line := &recordingLine{}
	s := NewSwitch(line, 8, 20)

	if s.LightStatus() || s.OverrideStatus() {
		t.Fatalf("initial: light=%v override=%v, want false/false", s.LightStatus(), s.OverrideStatus())
	}

	s.UpdateLights(10)
	if !s.LightStatus() {
		t.Fatal("after UpdateLights(10): expected light on")
	}

	s.OverrideLights(10)
	if !s.OverrideStatus() {
		t.Error("after first override: expected override active")
	}
	if s.LightStatus() {
		t.Error("after first override: expected light flipped off")
	}
	if line.last() != LevelHigh {
		t.Errorf("after first override: expected HIGH, got %s", line.last())
	}

	s.OverrideLights(10)
	if s.OverrideStatus() {
		t.Error("after second override: expected override released")
	}
	if !s.LightStatus() {
		t.Error("after second override: expected schedule to turn light back on")
	}
	if line.last() != LevelLow {
		t.Errorf("after second override: expected LOW, got %s", line.last())
	}
}

func TestOverrideToggleIsInverseInsideWindow(t *testing.T) {
	for h := 8; h < 20; h++ {
		s := NewSwitch(&recordingLine{}, 8, 20)
		s.UpdateLights(h)
		before := s.State()

		s.OverrideLights(h)
		s.OverrideLights(h)

		if s.State() != before {
			t.Errorf("hour %d: state %+v after double toggle, want %+v", h, s.State(), before)
		}
	}
}

// Outside the window the forced-on light survives leaving override, because
// the off trigger cannot fire for a same-day window.
func TestOverrideReleaseOutsideWindowKeepsLightOn(t *testing.T) {
	s := NewSwitch(&recordingLine{}, 8, 20)
	s.UpdateLights(22)

	s.OverrideLights(22)
	s.OverrideLights(22)

	if s.OverrideStatus() {
		t.Error("expected override released")
	}
	if !s.LightStatus() {
		t.Error("expected light to stay on after release at hour 22")
	}
}

func TestOvernightWindow(t *testing.T) {
	line := &recordingLine{}
	s := NewSwitch(line, 20, 8)

	// on trigger needs 20 <= h < 8: never
	for h := 0; h < 24; h++ {
		s.UpdateLights(h)
		if s.LightStatus() {
			t.Fatalf("hour %d: overnight window switched on", h)
		}
	}

	// Force on, then release during [8, 20): the off trigger fires
	s.OverrideLights(22)
	if !s.LightStatus() {
		t.Fatal("expected override to force light on")
	}
	s.OverrideLights(10)
	if s.LightStatus() {
		t.Error("expected release at hour 10 to switch light off")
	}
	if line.last() != LevelHigh {
		t.Errorf("expected HIGH after switch off, got %s", line.last())
	}

	// Release at an hour outside [8, 20) leaves it on
	s.OverrideLights(22)
	s.OverrideLights(22)
	if !s.LightStatus() {
		t.Error("expected light to stay on after release at hour 22")
	}
}

func TestEmptyWindowNeverTurnsOn(t *testing.T) {
	s := NewSwitch(&recordingLine{}, 12, 12)
	for h := 0; h < 24; h++ {
		s.UpdateLights(h)
		if s.LightStatus() {
			t.Errorf("hour %d: empty window switched on", h)
		}
	}
}

func TestAutoReachable(t *testing.T) {
	tests := []struct {
		on, off int
		wantOn  bool
		wantOff bool
	}{
		{8, 20, true, false},
		{20, 8, false, true},
		{12, 12, false, false},
		{0, 24, true, false},
	}
	for _, tt := range tests {
		if got := AutoOnReachable(tt.on, tt.off); got != tt.wantOn {
			t.Errorf("AutoOnReachable(%d, %d) = %v, want %v", tt.on, tt.off, got, tt.wantOn)
		}
		if got := AutoOffReachable(tt.on, tt.off); got != tt.wantOff {
			t.Errorf("AutoOffReachable(%d, %d) = %v, want %v", tt.on, tt.off, got, tt.wantOff)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelLow.String() != "LOW" {
		t.Errorf("LevelLow: got %q", LevelLow.String())
	}
	if LevelHigh.String() != "HIGH" {
		t.Errorf("LevelHigh: got %q", LevelHigh.String())
	}
}
