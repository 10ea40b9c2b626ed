package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/keyman/internal/core/domain"
)

type result struct {
	stdout string
	stderr string
	code   int
}

// runApp runs keyman with args against a fresh HOME so no user config
// leaks into the test.
func runApp(t *testing.T, args ...string) result {
	t.Helper()
	app := App()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"keyman"}, args...))
	code := ExitCode(&stderr, err)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{"KEYMAN_CONFIG", "KEYMAN_KEYFILE", "KEYMAN_OUTPUT", "KEYMAN_LOG_LEVEL"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	return filepath.Join(t.TempDir(), "keyfile.json")
}

func decodeKeys(t *testing.T, out string) []domain.Key {
	t.Helper()
	var keys []domain.Key
	require.NoError(t, json.Unmarshal([]byte(out), &keys), out)
	return keys
}

func readKeyfile(t *testing.T, path string) []domain.Key {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return decodeKeys(t, string(data))
}
