// Package config loads process settings from the environment, after an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Apurer/go-gin-pizza-service/internal/platform/observability"
)

// Telemetry configures logging and OpenTelemetry export.
type Telemetry struct {
	Environment  string `envconfig:"APP_ENV" default:"local"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	Exporter     string `envconfig:"OTEL_EXPORTER" default:"otlp"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Options converts the settings for observability.Init.
func (t Telemetry) Options(serviceName string) observability.Options {
	return observability.Options{
		ServiceName:  serviceName,
		Environment:  t.Environment,
		Exporter:     t.Exporter,
		OTLPEndpoint: t.OTLPEndpoint,
		OTLPInsecure: t.OTLPInsecure,
		LogLevel:     t.LogLevel,
	}
}

// Validate rejects unknown exporters.
func (t Telemetry) Validate() error {
	switch strings.ToLower(strings.TrimSpace(t.Exporter)) {
	case observability.ExporterOTLP, observability.ExporterStdout, observability.ExporterNone:
		return nil
	default:
		return fmt.Errorf("OTEL_EXPORTER must be one of otlp, stdout, none; got %q", t.Exporter)
	}
}

// Temporal configures the workflow client.
type Temporal struct {
	Address   string `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	Namespace string `envconfig:"TEMPORAL_NAMESPACE" default:"default"`
	Disabled  bool   `envconfig:"TEMPORAL_DISABLED"`
}

// Postgres configures the optional database. An empty DSN selects in-memory adapters.
type Postgres struct {
	DSN     string `envconfig:"POSTGRES_DSN"`
	Migrate bool   `envconfig:"POSTGRES_MIGRATE" default:"true"`
}

// Redis configures the optional session cache.
type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Load reads the given .env files (".env" when none are given), skipping
// missing ones, then fills spec from the environment and runs its Validate method
// when it has one. Existing variables win over file values.
func Load(spec any, files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	if err := envconfig.Process("", spec); err != nil {
		return err
	}
	if v, ok := spec.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}
