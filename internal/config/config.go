// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"fintrack/pkg/db" // Import db package for its Config struct
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
}

// ServerConfig holds settings of the local HTTP API.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"120s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver     string    `yaml:"driver"      env:"STORAGE_DRIVER"      env-default:"file"`
	Dir        string    `yaml:"dir"         env:"STORAGE_DIR"         env-default:"./data"`
	SQLitePath string    `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH" env-default:"./data/fintrack.db"`
	Postgres   db.Config `yaml:"postgres"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SessionConfig holds session settings.
type SessionConfig struct {
	// LoginDelay is a cosmetic pause before a login or signup completes.
	LoginDelay time.Duration `yaml:"login_delay" env:"SESSION_LOGIN_DELAY" env-default:"800ms"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Currency string `yaml:"currency" env:"DISPLAY_CURRENCY" env-default:"USD"`
}
