package gpio

import "github.com/sweeney/grow-light/internal/logic"

// FakeLine is a test double that records every level written to it.
type FakeLine struct {
	// Levels contains all levels written, in order.
	Levels []logic.Level

	// SetError, if set, is remembered by every Set and returned by Err.
	SetError error

	// Closed tracks if Close was called
	Closed bool

	// CloseError, if set, will be returned by Close()
	CloseError error

	lastErr error
}

// NewFakeLine creates an empty FakeLine.
func NewFakeLine() *FakeLine {
	return &FakeLine{}
}

// Set records the level.
func (f *FakeLine) Set(level logic.Level) {
	f.Levels = append(f.Levels, level)
	f.lastErr = f.SetError
}

// Err returns the error remembered by the most recent Set.
func (f *FakeLine) Err() error {
	return f.lastErr
}

// Last returns the most recent level and whether anything was written.
func (f *FakeLine) Last() (logic.Level, bool) {
	if len(f.Levels) == 0 {
		return logic.LevelHigh, false
	}
	return f.Levels[len(f.Levels)-1], true
}

// Close marks the line as closed.
func (f *FakeLine) Close() error {
	f.Closed = true
	return f.CloseError
}

// Reset clears recorded levels.
func (f *FakeLine) Reset() {
	f.Levels = nil
	f.Closed = false
	f.SetError = nil
	f.lastErr = nil
}
