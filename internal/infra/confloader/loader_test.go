package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Keyfile string `koanf:"keyfile"`
	Lock    struct {
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"lock"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keyman.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/path/to/config.yaml")
	}
	if NewLoader().envPrefix != DefaultEnvPrefix {
		t.Errorf("default envPrefix should be %q", DefaultEnvPrefix)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfig(t, `
keyfile: /var/lib/keyman/keys.json
lock:
  timeout: 2s
`)

	var cfg testConfig
	if err := NewLoader(WithEnvPrefix("KMTEST_UNSET_"), WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Keyfile != "/var/lib/keyman/keys.json" {
		t.Errorf("Keyfile = %q", cfg.Keyfile)
	}
	if cfg.Lock.Timeout != 2*time.Second {
		t.Errorf("Lock.Timeout = %v, want 2s", cfg.Lock.Timeout)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	if err := NewLoader().LoadFile("/nonexistent/keyman.yaml"); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeConfig(t, `
keyfile: from-file.json
log:
  level: info
lock:
  timeout: 2s
`)
	t.Setenv("KMTEST_LOG_LEVEL", "error")
	t.Setenv("KMTEST_KEYFILE", "from-env.json")

	var cfg testConfig
	cfg.Lock.Timeout = 5 * time.Second

	l := NewLoader(
		WithEnvPrefix("KMTEST_"),
		WithConfigFile(path),
		WithOverrides(map[string]any{"keyfile": "from-flag.json"}),
	)
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Keyfile != "from-flag.json" {
		t.Errorf("Keyfile = %q, want flag value", cfg.Keyfile)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want env value", cfg.Log.Level)
	}
	if cfg.Lock.Timeout != 2*time.Second {
		t.Errorf("Lock.Timeout = %v, want file value", cfg.Lock.Timeout)
	}
}

func TestLoader_Load_KeepsDefaults(t *testing.T) {
	var cfg testConfig
	cfg.Keyfile = "keyfile.json"
	cfg.Lock.Timeout = 5 * time.Second

	if err := NewLoader(WithEnvPrefix("KMTEST_UNSET_")).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Keyfile != "keyfile.json" || cfg.Lock.Timeout != 5*time.Second {
		t.Errorf("defaults were overwritten: %+v", cfg)
	}
}

func TestLoader_LoadMap_Nested(t *testing.T) {
	var cfg testConfig
	l := NewLoader(
		WithEnvPrefix("KMTEST_UNSET_"),
		WithOverrides(map[string]any{"log.level": "debug"}),
	)
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := mapProvider(nil).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
}
