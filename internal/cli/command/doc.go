// Package command defines the keyman command line using urfave/cli/v2.
//
//   - root.go: application, global flags, configuration and logger setup
//   - actions.go: the fixed set of actions and their handlers
//   - args.go: field=value argument parsing
//   - report.go: turning errors into messages and exit codes
//
// Every invocation runs exactly one action and exits.
package command
