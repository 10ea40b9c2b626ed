package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyman/internal/core/domain"
)

var (
	errorColor  = color.New(color.FgRed)
	noticeColor = color.New(color.FgYellow)
)

// report prints argument errors as "<action>: <message>" followed by the
// usage help and converts them to exit status 1. Other errors are returned
// unchanged for ExitCode to print.
func report(c *cli.Context, action string, err error) error {
	if err == nil || !domain.IsArgumentError(err) {
		return err
	}

	msg := err.Error()
	var de *domain.DomainError
	if errors.As(err, &de) {
		msg = de.UserMessage()
	}
	errorColor.Fprintf(c.App.ErrWriter, "%s: %s\n", action, msg)
	if helpErr := cli.ShowAppHelp(c); helpErr != nil {
		return helpErr
	}
	return cli.Exit("", 1)
}

// notice prints an informational outcome that is not a failure, such as
// "Key not found".
func notice(w io.Writer, msg string) {
	noticeColor.Fprintln(w, msg)
}

// ExitCode prints err if it has not been reported yet and returns the
// process exit status for it.
func ExitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		return ec.ExitCode()
	}

	fmt.Fprintf(w, "error: %v\n", err)
	var de *domain.DomainError
	if errors.As(err, &de) && de.Cause != nil {
		fmt.Fprintf(w, "  caused by: %v\n", de.Cause)
	}
	return 1
}
