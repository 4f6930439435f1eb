// Package config loads the service configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/stavrou/partwatch/internal/monitor"
)

// Config is the full service configuration.
type Config struct {
	// Brokers is the Kafka bootstrap broker list.
	Brokers []string `yaml:"brokers"`

	// ClientID identifies this service to the brokers.
	ClientID string `yaml:"client_id"`

	// KafkaVersion selects the protocol version, e.g. "2.8.0".
	KafkaVersion string `yaml:"kafka_version"`

	// ListenAddr is the HTTP listen address for /metrics, /healthz and
	// /snapshot.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Monitor monitor.Config `yaml:"monitor"`
}

// Default returns the service defaults. Brokers and a topic selection mode
// still have to be supplied.
func Default() Config {
	return Config{
		ClientID:   "partwatch",
		ListenAddr: ":8080",
		LogLevel:   "info",
		Monitor:    monitor.DefaultConfig(),
	}
}

// Load reads the YAML file at path (empty path skips the file), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(&cfg)
	monitor.ApplyDefaults(&cfg.Monitor)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_VERSION"); v != "" {
		cfg.KafkaVersion = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TOPIC_LIST"); v != "" {
		cfg.Monitor.Topics = strings.Split(v, ",")
	}
	if v := os.Getenv("TOPIC_REGEX"); v != "" {
		cfg.Monitor.TopicRegex = v
	}
	if v := os.Getenv("RECONFIGURE_ON_LEADER_CHANGE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Monitor.ReconfigureOnLeaderChange = b
		}
	}
	if d := envDuration("POLL_INTERVAL"); d > 0 {
		cfg.Monitor.PollInterval = d
	}
	if d := envDuration("REQUEST_TIMEOUT"); d > 0 {
		cfg.Monitor.RequestTimeout = d
	}
	if d := envDuration("SHUTDOWN_TIMEOUT"); d > 0 {
		cfg.Monitor.ShutdownTimeout = d
	}
}

func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

// ParseLogLevel parses the configured log level. On an unknown level it
// returns info along with an error so the caller can warn instead of
// silently running at the wrong verbosity.
func (c *Config) ParseLogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Validate checks the service settings and the embedded monitor config.
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("%w: at least one kafka broker is required", monitor.ErrInvalidConfig)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr is required", monitor.ErrInvalidConfig)
	}
	return c.Monitor.Validate()
}
