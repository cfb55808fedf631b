package dashboard

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/Apurer/go-gin-pizza-service/internal/platform/config"
)

// Config carries environment-driven settings for the admin dashboard web app.
type Config struct {
	config.Telemetry

	Port            string        `envconfig:"PORT" default:"5173"`
	APIBaseURL      string        `envconfig:"PIZZA_API_URL" default:"http://localhost:3000"`
	APITimeout      time.Duration `envconfig:"PIZZA_API_TIMEOUT" default:"5s"`
	SessionKey      string        `envconfig:"SESSION_KEY" required:"true"`
	SecureCookies   bool          `envconfig:"SECURE_COOKIES"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func LoadConfig(files ...string) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, files...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate is invoked by config.Load.
func (c Config) Validate() error {
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if n := len(c.SessionKey); n != 32 && n != 64 {
		return errors.New("SESSION_KEY must be 32 or 64 bytes")
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("PIZZA_API_URL must be an absolute URL")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
