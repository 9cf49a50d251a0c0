package api

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.temporal.io/sdk/client"
)

// ConfigFileEnv names the optional YAML file loaded before environment overrides.
const ConfigFileEnv = "STOREFRONT_CONFIG"

// Config carries settings for the storefront processes. Values come from
// defaults, then the optional YAML file, then environment variables.
type Config struct {
	Port        string `koanf:"port"`
	PostgresDSN string `koanf:"postgres_dsn"`
	LogFile     string `koanf:"log_file"`
	LogLevel    string `koanf:"log_level"`
	StaticDir   string `koanf:"static_dir"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Temporal struct {
		Address   string `koanf:"address"`
		Namespace string `koanf:"namespace"`
		Disabled  bool   `koanf:"disabled"`
	} `koanf:"temporal"`

	Sessions struct {
		CartTTLHours         int  `koanf:"cart_ttl_hours"`
		SessionTTLHours      int  `koanf:"session_ttl_hours"`
		CookieSecure         bool `koanf:"cookie_secure"`
		PurgeIntervalMinutes int  `koanf:"purge_interval_minutes"`
	} `koanf:"sessions"`

	UPI struct {
		ID        string `koanf:"id"`
		PayeeName string `koanf:"payee_name"`
		QRSize    int    `koanf:"qr_size"`
	} `koanf:"upi"`
}

// envKeys maps the supported environment variables onto config keys.
var envKeys = map[string]string{
	"PORT":                           "port",
	"POSTGRES_DSN":                   "postgres_dsn",
	"LOG_FILE":                       "log_file",
	"LOG_LEVEL":                      "log_level",
	"STATIC_DIR":                     "static_dir",
	"REDIS_ADDR":                     "redis.addr",
	"REDIS_PASSWORD":                 "redis.password",
	"REDIS_DB":                       "redis.db",
	"TEMPORAL_ADDRESS":               "temporal.address",
	"TEMPORAL_NAMESPACE":             "temporal.namespace",
	"TEMPORAL_DISABLED":              "temporal.disabled",
	"CART_TTL_HOURS":                 "sessions.cart_ttl_hours",
	"SESSION_TTL_HOURS":              "sessions.session_ttl_hours",
	"COOKIE_SECURE":                  "sessions.cookie_secure",
	"SESSION_PURGE_INTERVAL_MINUTES": "sessions.purge_interval_minutes",
	"UPI_ID":                         "upi.id",
	"UPI_PAYEE_NAME":                 "upi.payee_name",
	"UPI_QR_SIZE":                    "upi.qr_size",
}

func defaultConfig() Config {
	var cfg Config
	cfg.Port = "8080"
	cfg.LogLevel = "info"
	cfg.Temporal.Address = client.DefaultHostPort
	cfg.Temporal.Namespace = client.DefaultNamespace
	cfg.Sessions.CartTTLHours = 14 * 24
	cfg.Sessions.SessionTTLHours = 14 * 24
	cfg.UPI.ID = "yourupi@bank"
	cfg.UPI.PayeeName = "Your Shop Name"
	cfg.UPI.QRSize = 256
	return cfg
}

// LoadConfig reads the optional YAML file named by STOREFRONT_CONFIG, applies
// environment overrides, and validates basic constraints.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return envKeys[name], value
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.Redis.Addr = strings.TrimSpace(cfg.Redis.Addr)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("port must be a valid TCP port, got %q", c.Port)
	}
	if c.Sessions.CartTTLHours <= 0 {
		return fmt.Errorf("CART_TTL_HOURS must be a positive integer")
	}
	if c.Sessions.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be a positive integer")
	}
	if c.Sessions.PurgeIntervalMinutes < 0 {
		return fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must not be negative")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	if c.UPI.QRSize < 0 {
		return fmt.Errorf("UPI_QR_SIZE must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) CartTTL() time.Duration {
	return time.Duration(c.Sessions.CartTTLHours) * time.Hour
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.SessionTTLHours) * time.Hour
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.LogLevel)
	}
	return level, nil
}
