// Package main is the rovercli command itself.
package main

import (
	"context"
	"os"
	"os/signal"

	rovercli "github.com/viamrobotics/rovercli/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := rovercli.NewApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		cancel()
		rovercli.Errorf(app.ErrWriter, "%v", err)
	}
}
