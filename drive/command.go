package drive

// MotorCommand is the voltage to hold on a single named motor.
type MotorCommand struct {
	Name    string  `json:"name"`
	Voltage float64 `json:"voltage"`
}

// MotionCommand is submitted to /verify/fixed_distance. Every motor is held at its voltage
// for Duration seconds.
type MotionCommand struct {
	Duration      float64        `json:"duration"`
	MotorCommands []MotorCommand `json:"motor_commands"`
}

// Solution is a MotionCommand along with the values it was derived from.
type Solution struct {
	Command MotionCommand

	Distance          float64
	BatteryMaxVoltage float64
	// MaxWheelSpeed is the speed every wheel is driven at; the slowest wheel's ceiling.
	MaxWheelSpeed float64
	// Bottleneck is the index of the motor whose ceiling sets MaxWheelSpeed.
	Bottleneck int
	Warnings   []string
}

// BottleneckMotor returns the name of the motor that limits the rover's speed.
func (s *Solution) BottleneckMotor() string {
	return s.Command.MotorCommands[s.Bottleneck].Name
}
