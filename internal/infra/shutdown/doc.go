// Package shutdown ties a command run to process termination signals.
//
// The context returned by WithSignals is cancelled on SIGINT or SIGTERM, so
// a run waiting on the keyfile lock stops instead of waiting out the lock
// timeout. Signal reports which signal ended the run.
//
// Usage:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
//	err := app.RunContext(ctx, os.Args)
package shutdown
