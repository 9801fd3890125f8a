package application

import "fmt"

// TransportError is returned when the device answers with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fully kiosk api: http status %d: %s", e.StatusCode, e.Body)
}

// CommandError is returned when an otherwise successful response carries the
// application-level error status.
type CommandError struct {
	Status string
	Text   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("fully kiosk command failed: %s: %s", e.Status, e.Text)
}

// ConfigError is returned when the device settings carry a broker URL that
// cannot be resolved into host and port.
type ConfigError struct {
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid mqtt broker url %q: %s", e.Value, e.Reason)
}
