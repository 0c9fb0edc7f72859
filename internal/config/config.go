// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tripmoa/tripledger/internal/models"
)

// Config holds every runtime knob. The roster and the trip budget are
// configuration on purpose: the member set is fixed for the lifetime of
// a ledger and the budget is a constant of the trip, not user data.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"./data/tripledger.db"`

	// RosterNames is the comma-separated fixed member set. The default
	// matches the four-member reference deployment.
	RosterNames []string `env:"ROSTER" envSeparator:"," envDefault:"ME,J,K,M"`

	// TripBudget is the total trip budget in the smallest currency
	// unit, reported by the summary endpoint.
	TripBudget int64 `env:"TRIP_BUDGET" envDefault:"2000000"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load reads a .env file if one exists, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if len(c.Roster()) == 0 {
		return fmt.Errorf("roster must name at least one member")
	}
	if c.TripBudget < 0 {
		return fmt.Errorf("trip budget must be non-negative, got %d", c.TripBudget)
	}
	return nil
}

// Roster returns the configured member set with blanks trimmed and
// duplicates dropped, preserving configured order.
func (c *Config) Roster() models.Roster {
	seen := make(map[string]bool, len(c.RosterNames))
	roster := make(models.Roster, 0, len(c.RosterNames))
	for _, name := range c.RosterNames {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		roster = append(roster, models.Member(name))
	}
	return roster
}
