//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/grow-light/internal/logic"
)

// RealLine is not available on non-Linux platforms.
type RealLine struct{}

// NewRealLine returns an error on non-Linux platforms.
func NewRealLine(chipName string, pin int) (*RealLine, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (r *RealLine) Set(level logic.Level) {}

// Err always returns nil on non-Linux platforms.
func (r *RealLine) Err() error { return nil }

// Close is not implemented on non-Linux platforms.
func (r *RealLine) Close() error {
	return nil
}
