package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DataBackend string `env:"DATA_BACKEND" envDefault:"memory"`

	// Google Sheets row-store
	SheetID            string `env:"GOOGLE_SHEET_ID"`
	SheetName          string `env:"GOOGLE_SHEET_NAME" envDefault:"Gastos"`
	ServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountFile string `env:"GOOGLE_SERVICE_ACCOUNT_FILE"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration, collecting every problem instead of
// stopping at the first one.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	if c.DataBackend == "sheets" {
		if c.SheetID == "" {
			errs = append(errs, "GOOGLE_SHEET_ID is required when using the sheets backend")
		}
		if c.ServiceAccountJSON == "" && c.ServiceAccountFile == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for the sheets backend")
		}
		if c.ServiceAccountFile != "" {
			if _, err := os.Stat(c.ServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("service account file does not exist: %s", c.ServiceAccountFile))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
