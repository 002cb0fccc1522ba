package observability

import (
	"time"

	"github.com/kbukum/taskstats/validation"
)

// Config configures OTLP export of traces and metrics.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP host:port.
	Endpoint   string        `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool          `mapstructure:"insecure"`
	Interval   time.Duration `mapstructure:"interval" validate:"gte=0"`
	SampleRate float64       `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ServiceInfo identifies the service on exported telemetry.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
