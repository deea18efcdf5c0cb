package logic

// Switch drives a single active-low output from an hour-of-day window
// [onHour, offHour), with a manual override toggle.
//
// Switch is not safe for concurrent use; it is owned by one control loop.
type Switch struct {
	line     Line
	onHour   int
	offHour  int
	lightOn  bool
	override bool
}

// NewSwitch creates a Switch and immediately commands the line off.
// The hours are not validated.
func NewSwitch(line Line, onHour, offHour int) *Switch {
	s := &Switch{
		line:    line,
		onHour:  onHour,
		offHour: offHour,
	}
	s.setOutput(false)
	return s
}

// UpdateLights applies the schedule for the given hour. It does nothing
// while an override is active.
//
// The off trigger requires hour < onHour AND hour >= offHour, so it only
// fires for windows where offHour < onHour. For an ordinary same-day window
// the light is never switched off by the schedule.
func (s *Switch) UpdateLights(hour int) {
	if s.override {
		return
	}
	if s.onHour <= hour && hour < s.offHour && !s.lightOn {
		s.setOutput(true)
	} else if hour < s.onHour && s.offHour <= hour && s.lightOn {
		s.setOutput(false)
	}
}

// OverrideLights toggles the override. Entering override flips the light;
// leaving it hands control back to the schedule for the given hour.
func (s *Switch) OverrideLights(hour int) {
	s.override = !s.override
	if s.override {
		s.setOutput(!s.lightOn)
	} else {
		s.UpdateLights(hour)
	}
}

// setOutput drives the line: ON is LOW, OFF is HIGH.
func (s *Switch) setOutput(on bool) {
	if on {
		s.line.Set(LevelLow)
	} else {
		s.line.Set(LevelHigh)
	}
	s.lightOn = on
}

// LightStatus reports whether the light is currently on.
func (s *Switch) LightStatus() bool {
	return s.lightOn
}

// OverrideStatus reports whether the schedule is currently overridden.
func (s *Switch) OverrideStatus() bool {
	return s.override
}

// Window returns the configured on and off hours.
func (s *Switch) Window() (onHour, offHour int) {
	return s.onHour, s.offHour
}

// State returns the current light and override flags.
func (s *Switch) State() SwitchState {
	return SwitchState{Light: s.lightOn, Override: s.override}
}

// AutoOnReachable reports whether any hour satisfies the schedule's on trigger.
func AutoOnReachable(onHour, offHour int) bool {
	return onHour < offHour
}

// AutoOffReachable reports whether any hour satisfies the schedule's off trigger.
func AutoOffReachable(onHour, offHour int) bool {
	return offHour < onHour
}
