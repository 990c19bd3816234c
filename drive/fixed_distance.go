// Package drive computes the motor commands that move a rover.
package drive

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/viamrobotics/rovercli/exercise"
	"github.com/viamrobotics/rovercli/rover"
)

const (
	roverPath    = "rover"
	exercisePath = "exercise"
)

// WheelSpeed returns the linear surface speed of m's wheel when m is driven at voltage with no load.
func WheelSpeed(m rover.Motor, voltage float64) float64 {
	motorRPM := m.KvRating * voltage
	// RPM at the wheel, then circumference per minute to distance per second.
	return (motorRPM / m.Wheel.GearRatio) * (m.Wheel.Circumference() / 60)
}

// VoltageForWheelSpeed is the inverse of WheelSpeed: the voltage that drives m's wheel at wheelSpeed.
func VoltageForWheelSpeed(m rover.Motor, wheelSpeed float64) float64 {
	motorRPM := (wheelSpeed * m.Wheel.GearRatio * 60) / m.Wheel.Circumference()
	return motorRPM / m.KvRating
}

// SolveFixedDistance computes the command that drives the rover straight for the exercise's fixed
// distance as fast as possible. All wheels turn at the same surface speed, which is the lowest
// top speed any single wheel can reach on the first battery.
func SolveFixedDistance(hw *rover.Config, ex *exercise.Spec) (*Solution, error) {
	distance, err := ex.Distance(exercisePath)
	if err != nil {
		return nil, err
	}
	if err := hw.Validate(roverPath); err != nil {
		return nil, err
	}
	battery, err := hw.PrimaryBattery(roverPath)
	if err != nil {
		return nil, err
	}

	speeds := lo.Map(hw.Motors, func(m rover.Motor, _ int) float64 {
		return WheelSpeed(m, battery.MaxVoltage)
	})
	bottleneck := 0
	for i, speed := range speeds {
		if speed < speeds[bottleneck] {
			bottleneck = i
		}
	}
	maxWheelSpeed := speeds[bottleneck]
	if !(maxWheelSpeed > 0) || math.IsInf(maxWheelSpeed, 1) {
		return nil, NewNonPositiveSpeedError(fmt.Sprintf("%s.motors.%d", roverPath, bottleneck), maxWheelSpeed)
	}

	duration := distance / maxWheelSpeed
	if !(duration > 0) || math.IsInf(duration, 1) {
		return nil, NewDegenerateDurationError(distance, maxWheelSpeed, duration)
	}

	commands := lo.Map(hw.Motors, func(m rover.Motor, _ int) MotorCommand {
		return MotorCommand{Name: m.Name, Voltage: VoltageForWheelSpeed(m, maxWheelSpeed)}
	})
	for i, cmd := range commands {
		if !(cmd.Voltage >= 0) || math.IsInf(cmd.Voltage, 0) {
			return nil, NewNonFiniteVoltageError(fmt.Sprintf("%s.motors.%d", roverPath, i), cmd.Voltage)
		}
	}

	var warnings []string
	if n := len(hw.Batteries); n > 1 {
		warnings = append(warnings, fmt.Sprintf(
			"%d batteries configured, only the first is used; combining batteries is unsupported", n))
	}

	return &Solution{
		Command: MotionCommand{
			Duration:      duration,
			MotorCommands: commands,
		},
		Distance:          distance,
		BatteryMaxVoltage: battery.MaxVoltage,
		MaxWheelSpeed:     maxWheelSpeed,
		Bottleneck:        bottleneck,
		Warnings:          warnings,
	}, nil
}
