package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-pizza-service/internal/platform/config"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	config.Telemetry
	Postgres config.Postgres
	Redis    config.Redis
	Temporal config.Temporal

	Port                 string        `envconfig:"PORT" default:"8080"`
	TokenSecret          string        `envconfig:"TOKEN_SECRET" required:"true"`
	TokenTTL             time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	PasswordCost         int           `envconfig:"PASSWORD_COST" default:"10"`
	SessionPurgeInterval time.Duration `envconfig:"SESSION_PURGE_INTERVAL" default:"0"`
	ShutdownTimeout      time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	BootstrapAdminEmail    string `envconfig:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
	BootstrapAdminName     string `envconfig:"BOOTSTRAP_ADMIN_NAME" default:"Admin User"`
	SeedMenu               bool   `envconfig:"SEED_MENU" default:"true"`
}

// LoadConfig reads .env and the environment, applies defaults, and validates basic constraints.
func LoadConfig(files ...string) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, files...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate is invoked by config.Load after the environment is processed.
func (c Config) Validate() error {
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(c.TokenSecret)) < 16 {
		return errors.New("TOKEN_SECRET must be at least 16 characters")
	}
	if c.PasswordCost < bcrypt.MinCost || c.PasswordCost > bcrypt.MaxCost {
		return fmt.Errorf("PASSWORD_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SessionPurgeInterval < 0 {
		return errors.New("SESSION_PURGE_INTERVAL must not be negative")
	}
	if (c.BootstrapAdminEmail == "") != (c.BootstrapAdminPassword == "") {
		return errors.New("BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
