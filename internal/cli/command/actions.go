package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyman/internal/cli/output"
	"github.com/yndnr/keyman/internal/core/domain"
	"github.com/yndnr/keyman/internal/core/service"
	"github.com/yndnr/keyman/internal/storage/keyfile"
	"github.com/yndnr/keyman/internal/telemetry/logger"
)

// handler runs an action against an opened key manager.
type handler func(c *cli.Context, m *service.KeyManager, args map[string]string) error

// action describes one entry of the fixed action set.
type action struct {
	name   string
	usage  string
	fields []string
	lock   keyfile.LockMode
	run    handler
}

var actions = []action{
	{
		name:   "genkey",
		usage:  "Generate a new key. Optional argument comment in the format comment=<comment>",
		fields: []string{"comment"},
		lock:   keyfile.LockExclusive,
		run:    genKey,
	},
	{
		name:   "revokekey",
		usage:  "Revoke a key. The format should be <field>=<value> where <field> is either id or key",
		fields: []string{"id", "key"},
		lock:   keyfile.LockExclusive,
		run:    revokeKey,
	},
	{
		name:  "listkeys",
		usage: "List all the keys available",
		lock:  keyfile.LockShared,
		run:   listKeys,
	},
	{
		name:   "keyrevoked",
		usage:  "Print whether a key is revoked. The format should be id=<id> or key=<key>",
		fields: []string{"id", "key"},
		lock:   keyfile.LockShared,
		run:    keyRevoked,
	},
	{
		name:  "reloadkeys",
		usage: "Merge keys added to the keyfile by other tools and list them",
		lock:  keyfile.LockShared,
		run:   reloadKeys,
	},
}

// Actions returns one command per supported action.
func Actions() []*cli.Command {
	commands := make([]*cli.Command, 0, len(actions))
	for _, a := range actions {
		commands = append(commands, &cli.Command{
			Name:      a.name,
			Usage:     a.usage,
			ArgsUsage: argsUsage(a.fields),
			Action:    dispatch(a),
		})
	}
	return commands
}

// ActionNames returns the names of all supported actions.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.name)
	}
	return names
}

func argsUsage(fields []string) string {
	usage := ""
	for i, f := range fields {
		if i > 0 {
			usage += " "
		}
		usage += "[" + f + "=<value>]"
	}
	return usage
}

// dispatch parses the action arguments, opens the keyfile with the lock the
// action needs and runs it.
func dispatch(a action) cli.ActionFunc {
	return func(c *cli.Context) error {
		args, err := parseFieldArgs(c.Args().Slice(), a.fields)
		if err != nil {
			return report(c, a.name, err)
		}

		cfg := configFrom(c)
		m, err := service.OpenKeyManager(c.Context, &service.KeyManagerConfig{
			Path:        cfg.Keyfile,
			TokenBytes:  cfg.Token.Bytes,
			LockMode:    a.lock,
			LockTimeout: cfg.Lock.Timeout,
		})
		if err != nil {
			return report(c, a.name, err)
		}
		defer func() {
			if err := m.Close(); err != nil {
				logger.L(c.Context).Warn("release keyfile lock", "error", err)
			}
		}()

		logger.L(c.Context).Debug("dispatching action", "action", a.name)
		if err := a.run(c, m, args); err != nil {
			logger.L(c.Context).Debug("action failed", "action", a.name, "code", domain.GetErrorCode(err))
			return report(c, a.name, err)
		}
		return nil
	}
}

// unknownAction runs when the first argument is not a known action.
func unknownAction(c *cli.Context) error {
	if !c.Args().Present() {
		return cli.ShowAppHelp(c)
	}
	name := c.Args().First()
	return report(c, name, domain.ErrUnknownAction.WithDetails(
		fmt.Sprintf("unknown action %q, expected one of: %v", name, ActionNames())))
}

func genKey(c *cli.Context, m *service.KeyManager, args map[string]string) error {
	_, err := m.Generate(c.Context, args["comment"])
	if errors.Is(err, domain.ErrKeyConflict) {
		notice(c.App.Writer, "Key already exists")
		return nil
	}
	if err != nil {
		return err
	}
	return renderKeys(c, m.List())
}

func revokeKey(c *cli.Context, m *service.KeyManager, args map[string]string) error {
	_, err := m.Revoke(c.Context, args["id"], args["key"])
	if errors.Is(err, domain.ErrKeyNotFound) {
		notice(c.App.Writer, "Key not found")
		return nil
	}
	if err != nil {
		return err
	}
	return renderKeys(c, m.List())
}

func listKeys(c *cli.Context, m *service.KeyManager, _ map[string]string) error {
	return renderKeys(c, m.List())
}

func keyRevoked(c *cli.Context, m *service.KeyManager, args map[string]string) error {
	revoked, err := m.IsRevoked(c.Context, args["id"], args["key"])
	if errors.Is(err, domain.ErrKeyNotFound) {
		notice(c.App.Writer, "Key not found")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, strconv.FormatBool(revoked))
	return nil
}

func reloadKeys(c *cli.Context, m *service.KeyManager, _ map[string]string) error {
	if _, err := m.Reload(c.Context); err != nil {
		return err
	}
	return renderKeys(c, m.List())
}

// renderKeys writes keys in the configured output format.
func renderKeys(c *cli.Context, keys []*domain.Key) error {
	format, err := output.ParseFormat(configFrom(c).Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(c.App.Writer, keys)
}
