package monitor

import (
	"fmt"
	"regexp"
	"time"
)

// Config controls what the monitor watches and how often it polls.
type Config struct {
	// Topics is an exact set of topic names to watch. Mutually exclusive
	// with TopicRegex.
	Topics []string `yaml:"topics"`

	// TopicRegex is matched against full topic names. Mutually exclusive
	// with Topics.
	TopicRegex string `yaml:"topic_regex"`

	// ReconfigureOnLeaderChange also signals topology changes when only a
	// partition leader moved. When false, leader-only moves are ignored.
	ReconfigureOnLeaderChange bool `yaml:"reconfigure_on_leader_change"`

	// PollInterval is the delay between the end of one poll cycle and the
	// start of the next.
	PollInterval time.Duration `yaml:"poll_interval"`

	// RequestTimeout bounds one full retrieval cycle, shared across both
	// metadata calls.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultConfig returns the default monitor settings. A topic selection
// mode still has to be supplied.
func DefaultConfig() Config {
	return Config{
		PollInterval:    5 * time.Minute,
		RequestTimeout:  60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ApplyDefaults fills unset durations with their defaults.
func ApplyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
}

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if len(c.Topics) > 0 && c.TopicRegex != "" {
		return fmt.Errorf("%w: topics and topic_regex are mutually exclusive", ErrInvalidConfig)
	}
	if len(c.Topics) == 0 && c.TopicRegex == "" {
		return fmt.Errorf("%w: either topics or topic_regex is required", ErrInvalidConfig)
	}
	if c.TopicRegex != "" {
		if _, err := regexp.Compile(c.TopicRegex); err != nil {
			return fmt.Errorf("%w: topic_regex: %v", ErrInvalidConfig, err)
		}
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}
