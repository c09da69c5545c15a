// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"fintrack/internal/domain"
	"fintrack/internal/util"
)

// Validate performs business-rule validation on the loaded configuration.
// LoadConfig calls it automatically.
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be > 0 (got %s)", c.Server.RequestTimeout)
	}
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Session.LoginDelay < 0 {
		return fmt.Errorf("session.login_delay must be >= 0 (got %s)", c.Session.LoginDelay)
	}

	c.Display.Currency = strings.ToUpper(strings.TrimSpace(c.Display.Currency))
	if !domain.IsKnownCurrency(c.Display.Currency) {
		return fmt.Errorf("display.currency %q is not an ISO 4217 code", c.Display.Currency)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case DriverMemory:
	case DriverFile:
		if strings.TrimSpace(s.Dir) == "" {
			return fmt.Errorf("dir is required for the %s driver", s.Driver)
		}
	case DriverSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the %s driver", s.Driver)
		}
	case DriverPostgres:
		if s.Postgres.Host == "" || s.Postgres.DBName == "" {
			return fmt.Errorf("postgres host and dbname are required")
		}
	default:
		return fmt.Errorf("%w: %q", util.ErrUnsupportedDriver, s.Driver)
	}
	return nil
}
