package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the startup configuration of cmd/preconnect
type Config struct {
	Pool    PoolConfig    `yaml:"pool"`
	Warmup  WarmupConfig  `yaml:"warmup"`
	Logging LoggingConfig `yaml:"logging"`
}

// PoolConfig selects the pool to warm up
type PoolConfig struct {
	Driver string `yaml:"driver"` // sqlite3 | mysql | postgres | redis | tcp
	DSN    string `yaml:"dsn"`
	Size   int    `yaml:"size"`
}

// WarmupConfig tunes the warmup run
type WarmupConfig struct {
	Rate           float64 `yaml:"rate"` // acquisitions per second, 0 means unpaced
	Burst          int     `yaml:"burst"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var drivers = []string{"sqlite3", "mysql", "postgres", "redis", "tcp"}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			Driver: "sqlite3",
			DSN:    "file::memory:",
			Size:   5,
		},
		Warmup: WarmupConfig{
			Rate:  0,
			Burst: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		if err := loadFromFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

func applyEnvOverrides(config *Config) error {
	if driver := os.Getenv("PRECONNECT_DRIVER"); driver != "" {
		config.Pool.Driver = driver
	}

	if dsn := os.Getenv("PRECONNECT_DSN"); dsn != "" {
		config.Pool.DSN = dsn
	}

	if size := os.Getenv("PRECONNECT_POOL_SIZE"); size != "" {
		val, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("PRECONNECT_POOL_SIZE: %w", err)
		}
		config.Pool.Size = val
	}

	if r := os.Getenv("PRECONNECT_RATE"); r != "" {
		val, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return fmt.Errorf("PRECONNECT_RATE: %w", err)
		}
		config.Warmup.Rate = val
	}

	if burst := os.Getenv("PRECONNECT_BURST"); burst != "" {
		val, err := strconv.Atoi(burst)
		if err != nil {
			return fmt.Errorf("PRECONNECT_BURST: %w", err)
		}
		config.Warmup.Burst = val
	}

	if timeout := os.Getenv("PRECONNECT_TIMEOUT"); timeout != "" {
		val, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("PRECONNECT_TIMEOUT: %w", err)
		}
		config.Warmup.TimeoutSeconds = val
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !contains(drivers, c.Pool.Driver) {
		return fmt.Errorf("unknown pool driver: %s", c.Pool.Driver)
	}

	if c.Pool.DSN == "" {
		return fmt.Errorf("pool dsn cannot be empty")
	}

	if c.Pool.Size < 1 {
		return fmt.Errorf("pool size must be at least 1")
	}

	if c.Warmup.Rate < 0 {
		return fmt.Errorf("warmup rate cannot be negative")
	}

	if c.Warmup.Rate > 0 && c.Warmup.Burst < 1 {
		return fmt.Errorf("warmup burst must be at least 1 when rate is set")
	}

	if c.Warmup.TimeoutSeconds < 0 {
		return fmt.Errorf("warmup timeout cannot be negative")
	}

	if !contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if !contains([]string{"text", "json"}, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// Timeout returns the bound on the whole warmup, 0 means none
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Warmup.TimeoutSeconds) * time.Second
}

// String returns a string representation of the configuration (for logging).
// The DSN is left out, it usually carries credentials.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Driver: %s, Size: %d, Rate: %g, LogLevel: %s}",
		c.Pool.Driver, c.Pool.Size, c.Warmup.Rate, c.Logging.Level)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
