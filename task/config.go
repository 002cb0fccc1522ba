package task

import (
	"time"

	"github.com/kbukum/taskstats/validation"
)

// Drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config selects and tunes the record source.
type Config struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite"`
	Path   string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	// Delay adds artificial latency to every fetch.
	Delay   time.Duration `mapstructure:"delay" validate:"gte=0"`
	Seed    bool          `mapstructure:"seed"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// RetryConfig configures fetch retries.
type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"min=1,max=10"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" validate:"gte=0"`
}

// BreakerConfig configures the fetch circuit breaker. MaxFailures 0
// disables it.
type BreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures" validate:"gte=0"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialBackoff == 0 {
		c.Retry.InitialBackoff = 100 * time.Millisecond
	}
	if c.Breaker.MaxFailures > 0 && c.Breaker.Timeout == 0 {
		c.Breaker.Timeout = 30 * time.Second
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
