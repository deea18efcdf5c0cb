// Package gpio provides the grow-light output line with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/grow-light/internal/logic"

// Writer is an output line that can be released.
type Writer interface {
	logic.Line

	// Err returns the error from the most recent Set, or nil if it succeeded.
	Err() error

	// Close releases GPIO resources.
	Close() error
}

// Defaults for a Raspberry Pi relay HAT (BCM numbering).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 17
)

// rawValue maps a logical level to a gpiocdev line value.
func rawValue(level logic.Level) int {
	if level == logic.LevelLow {
		return 0
	}
	return 1
}
