package mqtt

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a request received on TopicCommand.
type Command string

// CommandOverride toggles the schedule override.
const CommandOverride Command = "OVERRIDE"

// ParseCommand decodes a command payload. "OVERRIDE" and "TOGGLE" are
// accepted in any case, surrounding whitespace ignored.
func ParseCommand(payload []byte) (Command, error) {
	s := strings.ToUpper(strings.TrimSpace(string(payload)))
	switch s {
	case "OVERRIDE", "TOGGLE":
		return CommandOverride, nil
	case "":
		return "", errors.New("empty command")
	default:
		return "", fmt.Errorf("unknown command %q", s)
	}
}
