// Package exercise describes the exercises served by the rover service.
package exercise

import (
	"math"

	"github.com/viamrobotics/rovercli/rover"
)

// FixedDistance asks the rover to travel a set distance in a straight line.
type FixedDistance struct {
	Value *float64 `json:"value,omitempty"`
}

// Spec is the exercise description served at /exercises. Every field is optional on the wire.
type Spec struct {
	FixedDistance *FixedDistance `json:"fixed_distance,omitempty"`
}

// Distance returns the validated fixed distance of the exercise.
func (s *Spec) Distance(path string) (float64, error) {
	if s == nil || s.FixedDistance == nil {
		return 0, rover.NewFieldRequiredError(path, "fixed_distance")
	}
	fdPath := path + ".fixed_distance"
	if s.FixedDistance.Value == nil {
		return 0, rover.NewFieldRequiredError(fdPath, "value")
	}
	value := *s.FixedDistance.Value
	if !(value > 0) || math.IsInf(value, 1) {
		return 0, rover.NewNonPositiveFieldError(fdPath, "value", value)
	}
	return value, nil
}

// NewFixedDistance returns a Spec asking for the given fixed distance.
func NewFixedDistance(value float64) *Spec {
	return &Spec{FixedDistance: &FixedDistance{Value: &value}}
}
