package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// DefaultSignals are the signals WithSignals listens for when none are given.
var DefaultSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// SignalError is the cancellation cause of a context ended by a signal.
type SignalError struct {
	Signal os.Signal
}

// Error implements the error interface.
func (e *SignalError) Error() string {
	return "received signal " + e.Signal.String()
}

// WithSignals returns a copy of parent that is cancelled when one of sigs
// arrives. The returned stop function unregisters the handler and cancels
// the context; it is safe to call more than once.
func WithSignals(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if len(sigs) == 0 {
		sigs = DefaultSignals
	}

	ctx, cancel := context.WithCancelCause(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			cancel(&SignalError{Signal: sig})
		case <-ctx.Done():
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
			cancel(context.Canceled)
		})
	}
	return ctx, stop
}

// Signal returns the signal that cancelled ctx, if any.
func Signal(ctx context.Context) (os.Signal, bool) {
	var se *SignalError
	if errors.As(context.Cause(ctx), &se) {
		return se.Signal, true
	}
	return nil, false
}

// ExitStatus returns the conventional shell exit status for a process
// ended by sig: 128 plus the signal number.
func ExitStatus(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
