package gpio

import (
	"log"

	"github.com/sweeney/grow-light/internal/logic"
)

// LogLine is an output that only logs level changes. Used for dry runs on
// machines without the relay attached.
type LogLine struct {
	Pin    int
	logger *log.Logger
}

// NewLogLine creates a LogLine writing to logger, or the standard logger if nil.
func NewLogLine(pin int, logger *log.Logger) *LogLine {
	if logger == nil {
		logger = log.Default()
	}
	return &LogLine{Pin: pin, logger: logger}
}

// Set logs the requested level.
func (l *LogLine) Set(level logic.Level) {
	l.logger.Printf("gpio: pin %d -> %s", l.Pin, level)
}

// Err always returns nil; logging cannot fail the write.
func (l *LogLine) Err() error {
	return nil
}

// Close does nothing.
func (l *LogLine) Close() error {
	return nil
}
