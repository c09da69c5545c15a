// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/util"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "0.0.0.0"
  port: 9090
  request_timeout: "5s"
storage:
  driver: "sqlite"
  sqlite_path: "/tmp/fintrack-test.db"
log:
  level: "debug"
  format: "text"
session:
  login_delay: "0s"
display:
  currency: "eur"
`

func TestLoadConfig_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir())) // no ./config.yaml here
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Equal(t, 5432, cfg.Storage.Postgres.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 800*time.Millisecond, cfg.Session.LoginDelay)
	assert.Equal(t, "USD", cfg.Display.Currency)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/fintrack-test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.Duration(0), cfg.Session.LoginDelay)
	assert.Equal(t, "EUR", cfg.Display.Currency, "currency is normalised")
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			Server:  ServerConfig{Port: 8080, RequestTimeout: time.Second},
			Storage: StorageConfig{Driver: DriverFile, Dir: "./data"},
			Session: SessionConfig{LoginDelay: 0},
			Display: DisplayConfig{Currency: "USD"},
		}
	}

	t.Run("Valid", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Driver = "redis"
		assert.ErrorIs(t, cfg.Validate(), util.ErrUnsupportedDriver)
	})

	t.Run("FileDriverNeedsDir", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Dir = " "
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("NegativeLoginDelay", func(t *testing.T) {
		cfg := valid()
		cfg.Session.LoginDelay = -time.Second
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownCurrency", func(t *testing.T) {
		cfg := valid()
		cfg.Display.Currency = "ZZZ"
		assert.Error(t, cfg.Validate())
	})
}
