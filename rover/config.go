// Package rover describes the physical configuration of a rover as reported by the rover service.
package rover

import (
	"fmt"
	"math"
)

// Wheel is the wheel and gearbox driven by a single motor.
type Wheel struct {
	Diameter  float64 `json:"diameter"`
	GearRatio float64 `json:"gear_ratio"`
}

// Circumference returns the distance the wheel travels in one output revolution.
func (w Wheel) Circumference() float64 {
	return math.Pi * w.Diameter
}

// Validate ensures all parts of the wheel are valid.
func (w Wheel) Validate(path string) error {
	if !isPositive(w.Diameter) {
		return NewNonPositiveFieldError(path, "diameter", w.Diameter)
	}
	if !isPositive(w.GearRatio) {
		return NewNonPositiveFieldError(path, "gear_ratio", w.GearRatio)
	}
	return nil
}

// Motor is a drive motor and the wheel it turns.
type Motor struct {
	Name string `json:"name"`
	// RPM per volt at no load.
	KvRating float64 `json:"kv_rating"`
	Wheel    Wheel   `json:"wheel"`
}

// Validate ensures all parts of the motor are valid.
func (m Motor) Validate(path string) error {
	if !isPositive(m.KvRating) {
		return NewNonPositiveFieldError(path, "kv_rating", m.KvRating)
	}
	return m.Wheel.Validate(path + ".wheel")
}

// Battery is a power source for the drive motors.
type Battery struct {
	MaxVoltage float64 `json:"max_voltage"`
}

// Validate ensures the battery is valid.
func (b Battery) Validate(path string) error {
	if !isPositive(b.MaxVoltage) {
		return NewNonPositiveFieldError(path, "max_voltage", b.MaxVoltage)
	}
	return nil
}

// Config is the hardware configuration served at /rover/config.
type Config struct {
	Motors    []Motor   `json:"motors"`
	Batteries []Battery `json:"batteries"`
}

// Validate ensures all parts of the config are valid. Only the first battery is
// validated since it is the only one ever used.
func (cfg *Config) Validate(path string) error {
	if cfg == nil || len(cfg.Batteries) == 0 {
		return NewFieldRequiredError(path, "batteries")
	}
	if err := cfg.Batteries[0].Validate(indexPath(path, "batteries", 0)); err != nil {
		return err
	}
	if len(cfg.Motors) == 0 {
		return NewFieldRequiredError(path, "motors")
	}
	for i, m := range cfg.Motors {
		if err := m.Validate(indexPath(path, "motors", i)); err != nil {
			return err
		}
	}
	return nil
}

// PrimaryBattery returns the battery whose max voltage bounds every motor.
func (cfg *Config) PrimaryBattery(path string) (Battery, error) {
	if cfg == nil || len(cfg.Batteries) == 0 {
		return Battery{}, NewFieldRequiredError(path, "batteries")
	}
	return cfg.Batteries[0], nil
}

func indexPath(path, field string, i int) string {
	return fmt.Sprintf("%s.%s.%d", path, field, i)
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
