// internal/config/loader.go
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// LoadConfig reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is taken from CONFIG_PATH (fallback "./config.yaml").
// If the fallback file does not exist, configuration comes from ENV + defaults only.
func LoadConfig() (*AppConfig, error) {
	return LoadConfigFrom(os.Getenv("CONFIG_PATH"))
}

// LoadConfigFrom is LoadConfig with an explicit YAML path; an empty path means
// "./config.yaml" if present. An explicit path that does not exist is an error.
func LoadConfigFrom(path string) (*AppConfig, error) {
	var cfg AppConfig

	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
