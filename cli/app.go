package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/viamrobotics/rovercli/roverapi"
)

// Version is the rovercli release.
const Version = "1.0.0"

const (
	baseURLFlag = "base-url"
	timeoutFlag = "timeout"
	debugFlag   = "debug"

	baseURLEnvVar = "ROVER_API_ENDPOINT"
)

// NewApp returns the rovercli app. Command output goes to out, warnings and errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "rovercli",
		Usage:           "interact with your rover through the rover api",
		Version:         Version,
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    baseURLFlag,
				EnvVars: []string{baseURLEnvVar},
				Value:   roverapi.DefaultBaseURL,
				Usage:   "base URL of the rover api",
			},
			&cli.DurationFlag{
				Name:  timeoutFlag,
				Value: roverapi.DefaultTimeout,
				Usage: "timeout for each request to the rover api",
			},
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "checks the health of the rover api",
				Action: HealthAction,
			},
			{
				Name:   "rover",
				Usage:  "fetches the rover config from the api",
				Action: RoverConfigAction,
			},
			{
				Name:   "exercise",
				Usage:  "fetches the exercise data from the api",
				Action: ExerciseAction,
			},
			{
				Name:   "fixed-distance",
				Usage:  "moves the rover by the fixed distance retrieved from the exercise api endpoint",
				Action: FixedDistanceAction,
			},
		},
	}
}
