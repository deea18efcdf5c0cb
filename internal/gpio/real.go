//go:build linux

package gpio

import (
	"fmt"
	"log"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/grow-light/internal/logic"
)

// RealLine drives an output on actual hardware using the Linux GPIO character device.
type RealLine struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  int

	mu      sync.Mutex
	lastErr error
}

// NewRealLine requests pin on the named chip as an output.
// The line starts HIGH so an active-low relay stays released.
func NewRealLine(chipName string, pin int) (*RealLine, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer("grow-light"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(rawValue(logic.LevelHigh)))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pin %d: %w", pin, err)
	}

	return &RealLine{
		chip: chip,
		line: line,
		pin:  pin,
	}, nil
}

// Set drives the line to level. A failed write is logged and kept for Err.
func (r *RealLine) Set(level logic.Level) {
	err := r.line.SetValue(rawValue(level))
	if err != nil {
		err = fmt.Errorf("set pin %d %s: %w", r.pin, level, err)
		log.Printf("gpio: %v", err)
	}
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}

// Err returns the error from the most recent Set, or nil if it succeeded.
func (r *RealLine) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Close releases GPIO resources.
// The pin is reconfigured as an input with pull-up before closing so the
// relay is released and the pin matches a safe state for reboot.
func (r *RealLine) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", r.pin, err))
		}
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", r.pin, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
