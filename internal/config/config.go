package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "CHECKOUT_"

const (
	SandboxBaseURL    = "https://connect.squareupsandbox.com"
	ProductionBaseURL = "https://connect.squareup.com"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logger     LoggerConfig     `koanf:"logger"`
	Square     SquareConfig     `koanf:"square"`
	CORS       CORSConfig       `koanf:"cors"`
	Ledger     LedgerConfig     `koanf:"ledger"`
	Reconciler ReconcilerConfig `koanf:"reconciler"`
	Retry      RetryConfig      `koanf:"retry"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"required"`
	HandlerTimeout  time.Duration `koanf:"handler_timeout" validate:"required"`
	// ShutdownTimeout is how long in-flight checkouts get to finish on SIGTERM.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

// SquareConfig holds both credential bundles. Env and the secrets are not
// validated here: a bad tag or a missing secret is reported per request by
// the credential resolver, so the service never starts against a guessed
// environment.
type SquareConfig struct {
	Env               string        `koanf:"env"`
	AllowEnvOverride  bool          `koanf:"allow_env_override"`
	APIVersion        string        `koanf:"api_version" validate:"required"`
	RequestTimeout    time.Duration `koanf:"request_timeout" validate:"required"`
	Currency          string        `koanf:"currency" validate:"required,len=3"`
	FlatShippingCents int64         `koanf:"flat_shipping_cents" validate:"min=0"`
	ReferencePrefix   string        `koanf:"reference_prefix"`
	Sandbox           SquareBundle  `koanf:"sandbox"`
	Production        SquareBundle  `koanf:"production"`
}

type SquareBundle struct {
	BaseURL       string `koanf:"base_url" validate:"required,url"`
	AccessToken   string `koanf:"access_token"`
	ApplicationID string `koanf:"application_id"`
	LocationID    string `koanf:"location_id"`
}

type CORSConfig struct {
	AllowedOrigins string `koanf:"allowed_origins"`
}

// Origins splits the comma-separated allow list. An empty list allows nothing.
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

const (
	LedgerDriverNone     = "none"
	LedgerDriverPostgres = "postgres"
	LedgerDriverSQLite   = "sqlite"
)

// LedgerConfig selects the orphan ledger. AdminToken guards the operator
// listing; without it the listing is not served at all.
type LedgerConfig struct {
	Driver     string         `koanf:"driver" validate:"required,oneof=none postgres sqlite"`
	SQLitePath string         `koanf:"sqlite_path"`
	AdminToken string         `koanf:"admin_token"`
	Database   DatabaseConfig `koanf:"database"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type ReconcilerConfig struct {
	Enabled   bool          `koanf:"enabled"`
	Interval  time.Duration `koanf:"interval" validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required,min=1"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	Insecure     bool   `koanf:"insecure"`
	ServiceName  string `koanf:"service_name" validate:"required"`
}

func (c TelemetryConfig) Enabled() bool {
	return c.OTLPEndpoint != ""
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host":             "0.0.0.0",
		"server.port":             "8088",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "90s",
		"server.idle_timeout":     "60s",
		"server.handler_timeout":  "75s",
		"server.shutdown_timeout": "90s",

		"logger.level":  "info",
		"logger.format": "json",

		"square.api_version":         "2025-01-16",
		"square.request_timeout":     "30s",
		"square.currency":            "USD",
		"square.flat_shipping_cents": 0,
		"square.reference_prefix":    "av-",
		"square.sandbox.base_url":    SandboxBaseURL,
		"square.production.base_url": ProductionBaseURL,

		"ledger.driver":                      LedgerDriverNone,
		"ledger.sqlite_path":                 "file:checkout-ledger.db?_pragma=busy_timeout(5000)",
		"ledger.database.port":               5432,
		"ledger.database.ssl_mode":           "disable",
		"ledger.database.max_open_conns":     5,
		"ledger.database.max_idle_conns":     1,
		"ledger.database.conn_max_lifetime":  "1h",
		"ledger.database.conn_max_idle_time": "30m",

		"reconciler.enabled":    false,
		"reconciler.interval":   "5m",
		"reconciler.batch_size": 25,

		"retry.base_delay":  "1s",
		"retry.max_retries": 3,

		"telemetry.service_name": "storefront-checkout",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags plus the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}

	// A checkout makes two sequential remote calls; the handler must outlive both.
	if c.Server.HandlerTimeout <= 2*c.Square.RequestTimeout {
		return fmt.Errorf("server.handler_timeout (%s) must exceed twice square.request_timeout (%s)",
			c.Server.HandlerTimeout, c.Square.RequestTimeout)
	}
	if c.Server.WriteTimeout <= c.Server.HandlerTimeout {
		return fmt.Errorf("server.write_timeout (%s) must exceed server.handler_timeout (%s)",
			c.Server.WriteTimeout, c.Server.HandlerTimeout)
	}
	if c.Server.ShutdownTimeout <= c.Server.HandlerTimeout {
		return fmt.Errorf("server.shutdown_timeout (%s) must exceed server.handler_timeout (%s)",
			c.Server.ShutdownTimeout, c.Server.HandlerTimeout)
	}

	switch c.Ledger.Driver {
	case LedgerDriverPostgres:
		if c.Ledger.Database.Host == "" || c.Ledger.Database.Name == "" || c.Ledger.Database.User == "" {
			return fmt.Errorf("ledger.database host, name and user are required for the postgres driver")
		}
	case LedgerDriverSQLite:
		if c.Ledger.SQLitePath == "" {
			return fmt.Errorf("ledger.sqlite_path is required for the sqlite driver")
		}
	}

	if c.Reconciler.Enabled && c.Ledger.Driver == LedgerDriverNone {
		return fmt.Errorf("reconciler requires a ledger driver")
	}

	return nil
}
