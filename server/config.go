package server

import (
	"fmt"
	"time"
)

// Config holds HTTP server configuration.
type Config struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds

	// IntentRate is the sustained number of intents accepted per second.
	IntentRate float64 `yaml:"intent_rate" mapstructure:"intent_rate"`
	// IntentBurst is how many intents may arrive at once.
	IntentBurst int `yaml:"intent_burst" mapstructure:"intent_burst"`
	// KeepAlive is the interval between SSE keep-alive comments.
	KeepAlive time.Duration `yaml:"keep_alive" mapstructure:"keep_alive"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.IntentRate == 0 {
		c.IntentRate = 5
	}
	if c.IntentBurst == 0 {
		c.IntentBurst = 10
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = 30 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	if c.IntentRate < 0 {
		return fmt.Errorf("server.intent_rate must be non-negative (got: %g)", c.IntentRate)
	}
	if c.IntentBurst < 0 {
		return fmt.Errorf("server.intent_burst must be non-negative (got: %d)", c.IntentBurst)
	}
	return nil
}
