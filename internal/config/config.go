package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Compat CompatConfig `mapstructure:"compat"`
}

type ServerConfig struct {
	Addr            string          `mapstructure:"addr"`
	Mode            string          `mapstructure:"mode"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig      `mapstructure:"cors"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig limits requests per client address. RPS of zero disables it.
type RateLimitConfig struct {
	RPS       float64       `mapstructure:"rps"`
	Burst     int           `mapstructure:"burst"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	Isolation       string        `mapstructure:"isolation"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CompatConfig switches the referential checks back to the rules of the
// first version of the API.
type CompatConfig struct {
	// LegacyReferenceChecks looks up availability product and supplier ids in
	// product_availability instead of products and suppliers.
	LegacyReferenceChecks bool `mapstructure:"legacy_reference_checks"`
	// LegacyProductDuplicates only rejects a product name that already
	// matches more than one product.
	LegacyProductDuplicates bool `mapstructure:"legacy_product_duplicates"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Isolation levels accepted by db.isolation.
var Isolations = []string{"default", "read-committed", "repeatable-read", "serializable"}

// New returns a viper instance with defaults, search paths and the
// SHOPFRONT_ environment prefix configured. Callers may bind flags on it
// before passing it to Load.
func New(configFile string) *viper.Viper {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.shopfront/")
		v.AddConfigPath("/etc/shopfront/")
	}

	// SHOPFRONT_DB_DSN overrides db.dsn
	v.SetEnvPrefix("SHOPFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors.allow_origins", []string{"*"})
	v.SetDefault("server.rate_limit.rps", 0)
	v.SetDefault("server.rate_limit.burst", 10)
	v.SetDefault("server.rate_limit.expires_in", 3*time.Minute)

	v.SetDefault("db.driver", DriverMySQL)
	v.SetDefault("db.dsn", "root:@tcp(127.0.0.1:3306)/cyf_ecommerce")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetime", 5*time.Minute)
	v.SetDefault("db.isolation", "serializable")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("compat.legacy_reference_checks", false)
	v.SetDefault("compat.legacy_product_duplicates", false)
}

// Load reads the config file if one is found and unmarshals the result.
// A missing config file is fine, defaults and environment still apply.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver: %q", c.DB.Driver)
	}

	if c.DB.DSN == "" {
		return errors.New("db.dsn must be set")
	}

	known := false
	for _, iso := range Isolations {
		if c.DB.Isolation == iso {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unsupported db isolation: %q", c.DB.Isolation)
	}

	if c.Server.RateLimit.RPS < 0 || c.Server.RateLimit.Burst < 0 {
		return errors.New("server.rate_limit values must not be negative")
	}

	for _, origin := range c.Server.CORS.AllowOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid cors origin: %q", origin)
		}
	}

	return nil
}
