package logic

import "time"

// Monitor turns successive switch states into transition events.
type Monitor struct {
	last          SwitchState
	baselined     bool
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewMonitor creates a Monitor. The startTime is used for calculating uptime
// in heartbeat events.
func NewMonitor(startTime time.Time) *Monitor {
	return &Monitor{
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Observe compares the given state against the previous observation and
// returns the events that describe the change. The first observation only
// establishes a baseline. When both flags change at once the override event
// comes first.
func (m *Monitor) Observe(state SwitchState, hour int, now time.Time) []Event {
	if !m.baselined {
		m.last = state
		m.baselined = true
		return nil
	}

	var events []Event

	if state.Override != m.last.Override {
		typ := EventOverrideOff
		if state.Override {
			typ = EventOverrideOn
		}
		events = append(events, Event{
			Timestamp: now,
			Type:      typ,
			Light:     StateOf(state.Light),
			Override:  state.Override,
			Hour:      hour,
		})
	}

	if state.Light != m.last.Light {
		typ := EventLightOff
		if state.Light {
			typ = EventLightOn
		}
		events = append(events, Event{
			Timestamp: now,
			Type:      typ,
			Light:     StateOf(state.Light),
			Override:  state.Override,
			Hour:      hour,
		})
	}

	m.last = state

	for _, e := range events {
		switch e.Type {
		case EventLightOn:
			m.eventCounts.LightOn++
		case EventLightOff:
			m.eventCounts.LightOff++
		case EventOverrideOn:
			m.eventCounts.OverrideOn++
		case EventOverrideOff:
			m.eventCounts.OverrideOff++
		}
	}

	return events
}

// IsBaselined returns whether the monitor has seen its first state.
func (m *Monitor) IsBaselined() bool {
	return m.baselined
}

// EventCountsSnapshot returns a copy of the event counters.
func (m *Monitor) EventCountsSnapshot() EventCounts {
	return m.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (m *Monitor) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !m.baselined {
		return nil
	}

	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}

	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.eventCounts,
	}
}
