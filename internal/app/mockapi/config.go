package mockapi

import (
	"strings"
	"time"

	"github.com/Apurer/go-gin-pizza-service/internal/platform/config"
)

// Config carries environment-driven settings for the mock API process.
type Config struct {
	config.Telemetry

	Port               string        `envconfig:"PORT" default:"3000"`
	TokenSecret        string        `envconfig:"MOCK_TOKEN_SECRET" default:"mock-pizza-secret"`
	PersistentClosures bool          `envconfig:"MOCK_PERSISTENT_CLOSURES"`
	EnableReset        bool          `envconfig:"MOCK_ENABLE_RESET" default:"true"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func LoadConfig(files ...string) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, files...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
