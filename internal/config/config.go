package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the main config struct
type Config struct {
	Environment string         `yaml:"environment" env:"ENVIRONMENT" env-default:"production" env-description:"Environment name"`
	Secret      string         `yaml:"secret" env:"SECRET" env-default:"" env-description:"Bearer token required for write requests, empty to disable"`
	Verbose     string         `yaml:"verbose" env:"VERBOSE" env-default:"info" env-description:"Verbose mode for debug output"`
	LogFormat   string         `yaml:"log_format" env:"LOG_FORMAT" env-default:"text" env-description:"Log output format, text or json"`
	Database    DatabaseConfig `yaml:"database"`
	API         APIConfig      `yaml:"api"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
	Proxy       ProxyConfig    `yaml:"proxy"`
}

// API config
type APIConfig struct {
	Host         string        `yaml:"host" env:"API_HOST" env-default:"localhost" env-description:"API host address to bind to"`
	Port         int           `yaml:"port" env:"API_PORT" env-default:"8080" env-description:"API port to bind to"`
	BaseURL      string        `yaml:"base_url" env:"API_BASE_URL" env-default:"" env-description:"Absolute URL prefix for generated links, empty for relative links"`
	Timeout      time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s" env-description:"Per-request handler timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"API_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"API_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"API_IDLE_TIMEOUT" env-default:"15s"`
}

// SQLite, PostgreSQL or MySQL config
type DatabaseConfig struct {
	// Driver is the database driver to use.
	// Supported drivers are "sqlite3", "sqlite", "postgres", "mysql", "mariadb" and "tidb".
	Driver     string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite3" env-description:"Database driver to use"`
	Connection string `yaml:"connection" env:"DATABASE_CONNECTION" env-default:":memory:" env-description:"Database connection string"`
}

// Cache config for the hunch lookup cache
type CacheConfig struct {
	Enabled     bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true" env-description:"Cache hunches looked up by id"`
	NumCounters int64         `yaml:"num_counters" env:"CACHE_NUM_COUNTERS" env-default:"10000"`
	MaxCost     int64         `yaml:"max_cost" env:"CACHE_MAX_COST" env-default:"1000"`
	TTL         time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
}

// InfluxDB metrics config, metrics are disabled when URL is empty
type MetricsConfig struct {
	URL    string `yaml:"url" env:"METRICS_URL" env-default:"" env-description:"InfluxDB server URL"`
	Token  string `yaml:"token" env:"METRICS_TOKEN" env-default:""`
	Org    string `yaml:"org" env:"METRICS_ORG" env-default:""`
	Bucket string `yaml:"bucket" env:"METRICS_BUCKET" env-default:"hunchworks"`
}

// Enabled reports whether metrics should be sent to InfluxDB.
func (m MetricsConfig) Enabled() bool {
	return m.URL != ""
}

// SOCKS5 proxy for outgoing metrics requests, disabled when the address is empty
type ProxyConfig struct {
	Address  string `yaml:"address" env:"PROXY_ADDRESS" env-default:"" env-description:"Proxy address"`
	Port     int    `yaml:"port" env:"PROXY_PORT" env-default:"1080" env-description:"Proxy port"`
	Username string `yaml:"username" env:"PROXY_USERNAME" env-default:""`
	Password string `yaml:"password" env:"PROXY_PASSWORD" env-default:""`
}

// Enabled reports whether outgoing requests go through the proxy.
func (p ProxyConfig) Enabled() bool {
	return p.Address != "" && p.Port != 0
}

// ConfigError is returned when the configuration cannot be loaded.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// MustLoadConfig loads the config from the file at CONFIG_PATH (config.yml by default),
// falling back to environment variables only when the default file is missing.
func MustLoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")

	return LoadConfig(configPath)
}

// LoadConfig loads the config from the given path. An empty path means config.yml,
// which may be absent.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	explicit := configPath != ""
	if !explicit {
		configPath = "config.yml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if explicit {
			return nil, &ConfigError{
				Message: fmt.Sprintf("Config file does not exist: %s", configPath),
			}
		}

		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, &ConfigError{
				Message: fmt.Sprintf("Cannot read environment: %s", err),
			}
		}

		return &config, nil
	}

	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, &ConfigError{
			Message: fmt.Sprintf("Cannot read config file: %s", err),
		}
	}

	return &config, nil
}
