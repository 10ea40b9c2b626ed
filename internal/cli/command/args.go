package command

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yndnr/keyman/internal/core/domain"
)

// fieldArgPattern is the shape of every argument after the action name.
var fieldArgPattern = regexp.MustCompile(`^[a-z]+=[a-zA-Z0-9]+$`)

// parseFieldArgs turns "field=value" arguments into a map keyed by the
// canonical field name ("value" is stored as "key"). Fields outside allowed
// are rejected; a repeated field keeps its last value.
func parseFieldArgs(args []string, allowed []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		if !fieldArgPattern.MatchString(arg) {
			return nil, domain.ErrInvalidArgumentFormat.WithDetails("The format should be <field>=<data>")
		}
		name, value, _ := strings.Cut(arg, "=")
		field, err := domain.ParseField(name)
		if err != nil || !slices.Contains(allowed, string(field)) {
			return nil, domain.ErrInvalidArgument.WithDetails(unexpectedFieldMessage(name, allowed))
		}
		fields[string(field)] = value
	}
	return fields, nil
}

func unexpectedFieldMessage(name string, allowed []string) string {
	if len(allowed) == 0 {
		return fmt.Sprintf("unexpected field %q, this action takes no arguments", name)
	}
	return fmt.Sprintf("unexpected field %q, expected one of: %s", name, strings.Join(allowed, ", "))
}
