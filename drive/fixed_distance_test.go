package drive

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/viamrobotics/rovercli/exercise"
	"github.com/viamrobotics/rovercli/rover"
)

const tolerance = 1e-9

func singleMotorRover() *rover.Config {
	return &rover.Config{
		Motors:    []rover.Motor{{Name: "drive", KvRating: 100, Wheel: rover.Wheel{Diameter: 0.1, GearRatio: 5}}},
		Batteries: []rover.Battery{{MaxVoltage: 12}},
	}
}

func threeMotorRover() *rover.Config {
	return &rover.Config{
		Motors: []rover.Motor{
			{Name: "front", KvRating: 100, Wheel: rover.Wheel{Diameter: 0.1, GearRatio: 5}},
			{Name: "middle", KvRating: 80, Wheel: rover.Wheel{Diameter: 0.1, GearRatio: 5}},
			{Name: "back", KvRating: 100, Wheel: rover.Wheel{Diameter: 0.12, GearRatio: 4}},
		},
		Batteries: []rover.Battery{{MaxVoltage: 12}},
	}
}

func TestWheelSpeedMath(t *testing.T) {
	m := singleMotorRover().Motors[0]
	// 100 * 12 / 5 = 240 wheel RPM
	speed := WheelSpeed(m, 12)
	test.That(t, speed, test.ShouldAlmostEqual, 240*math.Pi*0.1/60, tolerance)
	test.That(t, speed, test.ShouldAlmostEqual, 1.2566, 1e-4)
	test.That(t, VoltageForWheelSpeed(m, speed), test.ShouldAlmostEqual, 12, tolerance)
	test.That(t, WheelSpeed(m, 0), test.ShouldEqual, 0.0)
	test.That(t, VoltageForWheelSpeed(m, WheelSpeed(m, 3.3)), test.ShouldAlmostEqual, 3.3, tolerance)
}

func TestSolveFixedDistance(t *testing.T) {
	t.Run("single motor", func(t *testing.T) {
		hw := singleMotorRover()
		solution, err := SolveFixedDistance(hw, exercise.NewFixedDistance(10))
		test.That(t, err, test.ShouldBeNil)

		test.That(t, solution.MaxWheelSpeed, test.ShouldEqual, WheelSpeed(hw.Motors[0], 12))
		test.That(t, solution.MaxWheelSpeed, test.ShouldAlmostEqual, 1.2566, 1e-4)
		test.That(t, solution.Command.Duration, test.ShouldAlmostEqual, 7.958, 1e-3)
		test.That(t, solution.Command.MotorCommands, test.ShouldHaveLength, 1)
		test.That(t, solution.Command.MotorCommands[0].Name, test.ShouldEqual, "drive")
		test.That(t, solution.Command.MotorCommands[0].Voltage, test.ShouldAlmostEqual, 12, tolerance)
		test.That(t, solution.Bottleneck, test.ShouldEqual, 0)
		test.That(t, solution.BottleneckMotor(), test.ShouldEqual, "drive")
		test.That(t, solution.BatteryMaxVoltage, test.ShouldEqual, 12.0)
		test.That(t, solution.Distance, test.ShouldEqual, 10.0)
		test.That(t, solution.Warnings, test.ShouldBeEmpty)
	})

	t.Run("bottleneck motor sets the speed", func(t *testing.T) {
		hw := threeMotorRover()
		solution, err := SolveFixedDistance(hw, exercise.NewFixedDistance(10))
		test.That(t, err, test.ShouldBeNil)

		ceilings := []float64{}
		for _, m := range hw.Motors {
			ceilings = append(ceilings, WheelSpeed(m, 12))
		}
		test.That(t, solution.MaxWheelSpeed, test.ShouldEqual, math.Min(ceilings[0], math.Min(ceilings[1], ceilings[2])))
		test.That(t, solution.Bottleneck, test.ShouldEqual, 1)
		test.That(t, solution.BottleneckMotor(), test.ShouldEqual, "middle")

		cmds := solution.Command.MotorCommands
		test.That(t, cmds, test.ShouldHaveLength, 3)
		test.That(t, cmds[0].Name, test.ShouldEqual, "front")
		test.That(t, cmds[1].Name, test.ShouldEqual, "middle")
		test.That(t, cmds[2].Name, test.ShouldEqual, "back")

		test.That(t, cmds[0].Voltage, test.ShouldAlmostEqual, 9.6, tolerance)
		test.That(t, cmds[1].Voltage, test.ShouldAlmostEqual, 12, tolerance)
		test.That(t, cmds[2].Voltage, test.ShouldAlmostEqual, 6.4, tolerance)
		test.That(t, cmds[0].Voltage, test.ShouldBeLessThan, 12.0)
		test.That(t, cmds[2].Voltage, test.ShouldBeLessThan, 12.0)

		// every wheel ends up at the same surface speed
		for i, m := range hw.Motors {
			test.That(t, WheelSpeed(m, cmds[i].Voltage), test.ShouldAlmostEqual, solution.MaxWheelSpeed, tolerance)
		}
	})

	t.Run("ties pick the first motor", func(t *testing.T) {
		hw := singleMotorRover()
		twin := hw.Motors[0]
		twin.Name = "twin"
		hw.Motors = append(hw.Motors, twin)
		solution, err := SolveFixedDistance(hw, exercise.NewFixedDistance(1))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, solution.BottleneckMotor(), test.ShouldEqual, "drive")
		test.That(t, solution.Command.MotorCommands[1].Voltage, test.ShouldAlmostEqual, 12, tolerance)
	})

	t.Run("distance law", func(t *testing.T) {
		for _, distance := range []float64{0.001, 1, 10, 1234.5} {
			for _, hw := range []*rover.Config{singleMotorRover(), threeMotorRover()} {
				solution, err := SolveFixedDistance(hw, exercise.NewFixedDistance(distance))
				test.That(t, err, test.ShouldBeNil)
				test.That(t, solution.Command.Duration*solution.MaxWheelSpeed, test.ShouldAlmostEqual, distance, distance*tolerance)
			}
		}
	})

	t.Run("extra batteries are reported", func(t *testing.T) {
		hw := singleMotorRover()
		hw.Batteries = append(hw.Batteries, rover.Battery{MaxVoltage: 48})
		solution, err := SolveFixedDistance(hw, exercise.NewFixedDistance(10))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, solution.BatteryMaxVoltage, test.ShouldEqual, 12.0)
		test.That(t, solution.Command.MotorCommands[0].Voltage, test.ShouldAlmostEqual, 12, tolerance)
		test.That(t, solution.Warnings, test.ShouldHaveLength, 1)
		test.That(t, solution.Warnings[0], test.ShouldContainSubstring, "2 batteries")
	})

	t.Run("command encoding", func(t *testing.T) {
		solution, err := SolveFixedDistance(singleMotorRover(), exercise.NewFixedDistance(10))
		test.That(t, err, test.ShouldBeNil)
		out, err := json.Marshal(solution.Command)
		test.That(t, err, test.ShouldBeNil)

		var decoded map[string]any
		test.That(t, json.Unmarshal(out, &decoded), test.ShouldBeNil)
		test.That(t, decoded, test.ShouldContainKey, "duration")
		test.That(t, decoded, test.ShouldContainKey, "motor_commands")
		motorCommands, ok := decoded["motor_commands"].([]any)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, motorCommands[0], test.ShouldContainKey, "name")
		test.That(t, motorCommands[0], test.ShouldContainKey, "voltage")
	})
}

func TestSolveFixedDistanceErrors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		hw       func() *rover.Config
		ex       *exercise.Spec
		errField string
	}{
		{"no exercise", singleMotorRover, nil, "fixed_distance"},
		{"no fixed distance", singleMotorRover, &exercise.Spec{}, "fixed_distance"},
		{"no value", singleMotorRover, &exercise.Spec{FixedDistance: &exercise.FixedDistance{}}, "value"},
		{"zero distance", singleMotorRover, exercise.NewFixedDistance(0), "value"},
		{"negative distance", singleMotorRover, exercise.NewFixedDistance(-1), "value"},
		{"nil rover", func() *rover.Config { return nil }, exercise.NewFixedDistance(1), "batteries"},
		{"no batteries", func() *rover.Config {
			hw := singleMotorRover()
			hw.Batteries = nil
			return hw
		}, exercise.NewFixedDistance(1), "batteries"},
		{"no motors", func() *rover.Config {
			hw := singleMotorRover()
			hw.Motors = []rover.Motor{}
			return hw
		}, exercise.NewFixedDistance(1), "motors"},
		{"zero kv rating", func() *rover.Config {
			hw := threeMotorRover()
			hw.Motors[2].KvRating = 0
			return hw
		}, exercise.NewFixedDistance(1), "kv_rating"},
		{"negative gear ratio", func() *rover.Config {
			hw := threeMotorRover()
			hw.Motors[0].Wheel.GearRatio = -5
			return hw
		}, exercise.NewFixedDistance(1), "gear_ratio"},
		{"zero diameter", func() *rover.Config {
			hw := threeMotorRover()
			hw.Motors[1].Wheel.Diameter = 0
			return hw
		}, exercise.NewFixedDistance(1), "diameter"},
		{"speed underflows to zero", func() *rover.Config {
			return &rover.Config{
				Motors:    []rover.Motor{{Name: "tiny", KvRating: 1e-200, Wheel: rover.Wheel{Diameter: 1, GearRatio: 1}}},
				Batteries: []rover.Battery{{MaxVoltage: 1e-200}},
			}
		}, exercise.NewFixedDistance(1), "max_wheel_speed"},
		{"duration overflows", func() *rover.Config {
			return &rover.Config{
				Motors:    []rover.Motor{{Name: "slow", KvRating: 1e-10, Wheel: rover.Wheel{Diameter: 1, GearRatio: 1}}},
				Batteries: []rover.Battery{{MaxVoltage: 1}},
			}
		}, exercise.NewFixedDistance(1e300), "duration"},
		{"voltage overflows", func() *rover.Config {
			return &rover.Config{
				Motors: []rover.Motor{
					{Name: "a", KvRating: 1, Wheel: rover.Wheel{Diameter: 1, GearRatio: 1}},
					{Name: "b", KvRating: 1e308, Wheel: rover.Wheel{Diameter: 1, GearRatio: 1e308}},
				},
				Batteries: []rover.Battery{{MaxVoltage: 1}},
			}
		}, exercise.NewFixedDistance(1), "voltage"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			solution, err := SolveFixedDistance(tc.hw(), tc.ex)
			test.That(t, solution, test.ShouldBeNil)
			test.That(t, err, test.ShouldNotBeNil)

			var verr *rover.ValidationError
			test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
			test.That(t, verr.Field, test.ShouldEqual, tc.errField)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errField)
		})
	}
}
