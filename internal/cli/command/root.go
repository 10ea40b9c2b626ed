package command

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyman/internal/cli/config"
	"github.com/yndnr/keyman/internal/infra/buildinfo"
	"github.com/yndnr/keyman/internal/telemetry/logger"
)

const configMetadataKey = "config"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "keyman",
		Usage:     "Simple key management. Generate tokens for any usage.",
		UsageText: "keyman [global options] <action> [<field>=<value> ...]",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Commands:  Actions(),
		Before:    setup,
		Action:    unknownAction,
		// Exit codes are decided by the caller of Run, see ExitCode.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default: ~/.keyman/config.yaml if present)",
			EnvVars: []string{"KEYMAN_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "keyfile",
			Aliases: []string{"f"},
			Usage:   "JSON file holding the keys (default: keyfile.json)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level on stderr: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored messages",
		},
	}
}

// flagOverrides maps explicitly set flags onto configuration keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	if c.IsSet("keyfile") {
		overrides["keyfile"] = c.String("keyfile")
	}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}
	return overrides
}

// setup loads the configuration and installs the logger for the run.
func setup(c *cli.Context) error {
	if c.Bool("no-color") {
		color.NoColor = true
	}

	cfg, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return err
	}
	c.App.Metadata[configMetadataKey] = cfg

	l := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	logger.SetDefault(l)

	ctx := logger.WithLogger(c.Context, l)
	c.Context = logger.WithRunID(ctx, logger.NewRunID())

	logger.L(c.Context).Debug("configuration loaded", "path", cfg.Keyfile, "output", cfg.Output)
	return nil
}

// configFrom returns the configuration loaded by setup.
func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configMetadataKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
