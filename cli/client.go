// Package cli contains all business logic needed by the rovercli command.
package cli

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/viamrobotics/rovercli/drive"
	"github.com/viamrobotics/rovercli/logging"
	"github.com/viamrobotics/rovercli/roverapi"
)

// roverClient wraps a cli.Context and provides all the CLI command functionality
// needed to talk to the rover api.
type roverClient struct {
	c      *cli.Context
	client *roverapi.Client
	logger logging.Logger
}

func newRoverClient(c *cli.Context) (*roverClient, error) {
	logger := logging.NewLogger("rovercli")
	if c.Bool(debugFlag) {
		logger = logging.NewDebugLogger("rovercli")
	}

	// --timeout bounds each request through the http.Client, not the whole command.
	baseURL := c.String(baseURLFlag)
	client, err := roverapi.NewClient(baseURL, logger, roverapi.WithTimeout(c.Duration(timeoutFlag)))
	if err != nil {
		return nil, err
	}
	if baseURL != roverapi.DefaultBaseURL {
		infof(c.App.ErrWriter, "Using %q as base URL value", client.BaseURL())
	}
	return &roverClient{c: c, client: client, logger: logger}, nil
}

// HealthAction is the corresponding Action for 'health'.
func HealthAction(c *cli.Context) error {
	client, err := newRoverClient(c)
	if err != nil {
		return err
	}
	return client.healthAction(c)
}

func (rc *roverClient) healthAction(c *cli.Context) error {
	printf(c.App.Writer, "Checking rover api health")
	status, err := rc.client.Health(c.Context)
	if err != nil {
		return errors.Wrap(err, "error fetching rover api health")
	}
	printf(c.App.Writer, "%s", status.Status)
	return nil
}

// RoverConfigAction is the corresponding Action for 'rover'.
func RoverConfigAction(c *cli.Context) error {
	client, err := newRoverClient(c)
	if err != nil {
		return err
	}
	return client.roverConfigAction(c)
}

func (rc *roverClient) roverConfigAction(c *cli.Context) error {
	printf(c.App.Writer, "Fetching rover config")
	cfg, err := rc.client.RoverConfig(c.Context)
	if err != nil {
		return err
	}

	printf(c.App.Writer, "Rover config:")
	voltage := 0.0
	if err := cfg.Validate("rover"); err != nil {
		warningf(c.App.ErrWriter, "%v", err)
	} else {
		voltage = cfg.Batteries[0].MaxVoltage
	}
	printf(c.App.Writer, "%s", motorTable(cfg.Motors, voltage))
	printf(c.App.Writer, "%s", batteryTable(cfg.Batteries))
	if len(cfg.Batteries) > 1 {
		warningf(c.App.ErrWriter, "only the first battery is used for motor commands")
	}
	return nil
}

// ExerciseAction is the corresponding Action for 'exercise'.
func ExerciseAction(c *cli.Context) error {
	client, err := newRoverClient(c)
	if err != nil {
		return err
	}
	return client.exerciseAction(c)
}

func (rc *roverClient) exerciseAction(c *cli.Context) error {
	printf(c.App.Writer, "Fetching exercise data")
	spec, err := rc.client.Exercise(c.Context)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(spec)
	if err != nil {
		return errors.Wrap(err, "could not encode exercise data")
	}
	printf(c.App.Writer, "Exercise data: %s", raw)
	distance, err := spec.Distance("exercise")
	if err != nil {
		warningf(c.App.ErrWriter, "%v", err)
		return nil
	}
	printf(c.App.Writer, "Fixed distance: %v", distance)
	return nil
}

// FixedDistanceAction is the corresponding Action for 'fixed-distance'.
func FixedDistanceAction(c *cli.Context) error {
	client, err := newRoverClient(c)
	if err != nil {
		return err
	}
	return client.fixedDistanceAction(c)
}

func (rc *roverClient) fixedDistanceAction(c *cli.Context) error {
	printf(c.App.Writer, "Moving rover by fixed distance")

	cfg, spec, err := rc.client.FetchInputs(c.Context)
	if err != nil {
		return err
	}
	solution, err := drive.SolveFixedDistance(cfg, spec)
	if err != nil {
		return errors.Wrap(err, "could not compute motor command")
	}
	for _, warning := range solution.Warnings {
		warningf(c.App.ErrWriter, "%s", warning)
	}
	rc.logger.Debugw("solved fixed distance",
		"distance", solution.Distance,
		"max_wheel_speed", solution.MaxWheelSpeed,
		"bottleneck", solution.BottleneckMotor())

	printf(c.App.Writer, "Fixed distance: %v", solution.Distance)
	printf(c.App.Writer, "Battery max voltage: %v", solution.BatteryMaxVoltage)
	printf(c.App.Writer, "Final max wheel speed: %v (limited by %q)", solution.MaxWheelSpeed, solution.BottleneckMotor())
	printf(c.App.Writer, "Command:")
	printf(c.App.Writer, "%s", commandTable(solution.Command))

	res, err := rc.client.VerifyFixedDistance(c.Context, solution.Command)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "Response status: %d", res.StatusCode)
	printf(c.App.Writer, "API Response: %s", res.Body)
	return nil
}
