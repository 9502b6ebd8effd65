package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"time"

	"github.com/souhail747/luxe/internal/auth"
	pkgconfig "github.com/souhail747/luxe/pkg/config"
	"github.com/souhail747/luxe/pkg/database"
	"github.com/souhail747/luxe/pkg/httpclient"
	"github.com/souhail747/luxe/pkg/tracing"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

// Catalog sources.
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Config holds all configuration for the storefront process.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server; loopback only unless overridden.
	HTTPHost        string        `env:"STOREFRONT_HTTP_HOST" envDefault:"127.0.0.1"`
	HTTPPort        int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"STOREFRONT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"STOREFRONT_CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	PprofCIDRs      []string      `env:"STOREFRONT_PPROF_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`
	CatalogMaxAge   int           `env:"STOREFRONT_CATALOG_MAX_AGE" envDefault:"60"`
	AuthPerMinute   int           `env:"STOREFRONT_AUTH_PER_MINUTE" envDefault:"10"`
	AuthBurst       int           `env:"STOREFRONT_AUTH_BURST" envDefault:"5"`

	// Client-side storage, scoped to one profile.
	Profile  string               `env:"STOREFRONT_PROFILE" envDefault:"default"`
	Storage  string               `env:"STOREFRONT_STORAGE" envDefault:"file"`
	DataDir  string               `env:"STOREFRONT_DATA_DIR" envDefault:"./data"`
	RedisTTL time.Duration        `env:"STOREFRONT_REDIS_TTL" envDefault:"0"`
	Redis    database.RedisConfig `envPrefix:"REDIS_"`

	// Catalog
	CatalogSource string                  `env:"STOREFRONT_CATALOG" envDefault:"static"`
	CatalogSeed   bool                    `env:"STOREFRONT_CATALOG_SEED" envDefault:"true"`
	Postgres      database.PostgresConfig `envPrefix:"POSTGRES_"`

	// Auth endpoint
	Auth    auth.Config              `envPrefix:"AUTH_"`
	HTTP    httpclient.Config        `envPrefix:"AUTH_HTTP_"`
	Breaker httpclient.BreakerConfig `envPrefix:"AUTH_BREAKER_"`

	// Analytics; empty brokers disable publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"storefront.analytics"`

	Tracing tracing.Config `envPrefix:"OTEL_"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address of the local API.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTPHost, fmt.Sprint(c.HTTPPort))
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !profilePattern.MatchString(c.Profile) {
		return fmt.Errorf("invalid profile %q: use letters, digits, '-' or '_'", c.Profile)
	}

	switch c.Storage {
	case StorageMemory, StorageRedis:
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("STOREFRONT_DATA_DIR is required for file storage")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}

	switch c.CatalogSource {
	case CatalogStatic, CatalogPostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", c.CatalogSource)
	}

	u, err := url.Parse(c.Auth.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid AUTH_BASE_URL %q", c.Auth.BaseURL)
	}

	for _, cidr := range c.PprofCIDRs {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid pprof CIDR %q: %w", cidr, err)
		}
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}
