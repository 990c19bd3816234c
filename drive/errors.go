package drive

import (
	"github.com/pkg/errors"

	"github.com/viamrobotics/rovercli/rover"
)

// NewNonPositiveSpeedError returns an error for a rover whose slowest wheel cannot move.
func NewNonPositiveSpeedError(motorPath string, speed float64) error {
	return rover.NewValidationError(motorPath, "max_wheel_speed",
		errors.Errorf("%q must be positive and finite, got %v", "max_wheel_speed", speed))
}

// NewDegenerateDurationError returns an error for a distance that cannot be covered in a finite time.
func NewDegenerateDurationError(distance, speed, duration float64) error {
	return rover.NewValidationError("command", "duration",
		errors.Errorf("%q must be positive and finite, got %v covering %v at %v", "duration", duration, distance, speed))
}

// NewNonFiniteVoltageError returns an error for a motor whose commanded voltage cannot be sent.
func NewNonFiniteVoltageError(motorPath string, voltage float64) error {
	return rover.NewValidationError(motorPath, "voltage",
		errors.Errorf("%q must be non-negative and finite, got %v", "voltage", voltage))
}
