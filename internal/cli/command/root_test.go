package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/keyman/internal/core/domain"
)

func TestApp_NoArgsShowsHelp(t *testing.T) {
	isolate(t)
	res := runApp(t)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "keyman")
	for _, name := range ActionNames() {
		assert.Contains(t, res.stdout, name)
	}
}

func TestApp_Help(t *testing.T) {
	isolate(t)
	res := runApp(t, "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "genkey")
}

func TestApp_UnknownAction(t *testing.T) {
	path := isolate(t)
	res := runApp(t, "-f", path, "frobnicate")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "frobnicate: unknown action")
	assert.Contains(t, res.stdout, "USAGE")
	assert.NoFileExists(t, path)
}

func TestApp_ConfigFileAndEnv(t *testing.T) {
	path := isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keyfile: "+path+"\noutput: yaml\n"), 0o600))

	res := runApp(t, "-c", cfgPath, "genkey")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "- id: \"1\"")

	t.Setenv("KEYMAN_OUTPUT", "json")
	res = runApp(t, "-c", cfgPath, "listkeys")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Len(t, decodeKeys(t, res.stdout), 1)

	res = runApp(t, "-c", cfgPath, "-o", "table", "listkeys")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "| ID | REVOKED | COMMENT |")
}

func TestApp_MissingConfigFile(t *testing.T) {
	isolate(t)
	res := runApp(t, "-c", filepath.Join(t.TempDir(), "nope.yaml"), "listkeys")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "error:")
}

func TestApp_InvalidOutput(t *testing.T) {
	path := isolate(t)
	res := runApp(t, "-f", path, "-o", "xml", "listkeys")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown output format")
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, ExitCode(&buf, nil))
	assert.Empty(t, buf.String())

	assert.Equal(t, 1, ExitCode(&buf, cli.Exit("", 1)))
	assert.Empty(t, buf.String())

	assert.Equal(t, 3, ExitCode(&buf, cli.Exit("boom", 3)))
	assert.Equal(t, "boom\n", buf.String())
	buf.Reset()

	err := domain.ErrCorruptKeyfile.WithDetails("keyfile.json").WithCause(errors.New("unexpected EOF"))
	assert.Equal(t, 1, ExitCode(&buf, err))
	assert.Equal(t, "error: [KM-SYS-5002] corrupt keyfile: keyfile.json\n  caused by: unexpected EOF\n", buf.String())
}
