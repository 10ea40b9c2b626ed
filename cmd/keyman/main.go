package main

import (
	"context"
	"os"

	"github.com/yndnr/keyman/internal/cli/command"
	"github.com/yndnr/keyman/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.WithSignals(context.Background())
	app := command.App()

	err := app.RunContext(ctx, os.Args)
	code := command.ExitCode(os.Stderr, err)
	if sig, ok := shutdown.Signal(ctx); ok && err != nil {
		code = shutdown.ExitStatus(sig)
	}
	stop()
	os.Exit(code)
}
