package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/viamrobotics/rovercli/drive"
	"github.com/viamrobotics/rovercli/rover"
)

// motorTable lists motors and, when batteryVoltage is positive, the top wheel speed each
// can reach on it.
func motorTable(motors []rover.Motor, batteryVoltage float64) string {
	t := table.NewWriter()
	header := table.Row{"#", "Motor", "KV Rating", "Wheel Diameter", "Gear Ratio"}
	if batteryVoltage > 0 {
		header = append(header, "Max Wheel Speed")
	}
	t.AppendHeader(header)
	for i, m := range motors {
		row := table.Row{i, m.Name, m.KvRating, m.Wheel.Diameter, m.Wheel.GearRatio}
		if batteryVoltage > 0 {
			row = append(row, fmt.Sprintf("%.4f", drive.WheelSpeed(m, batteryVoltage)))
		}
		t.AppendRow(row)
	}
	return t.Render()
}

func batteryTable(batteries []rover.Battery) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Max Voltage"})
	for i, b := range batteries {
		t.AppendRow(table.Row{i, b.MaxVoltage})
	}
	return t.Render()
}

func commandTable(cmd drive.MotionCommand) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Motor", "Voltage"})
	for _, mc := range cmd.MotorCommands {
		t.AppendRow(table.Row{mc.Name, fmt.Sprintf("%.4f", mc.Voltage)})
	}
	t.AppendFooter(table.Row{"Duration", fmt.Sprintf("%.4f", cmd.Duration)})
	return t.Render()
}
