package main

import (
	"fmt"

	"github.com/kbukum/taskstats/config"
	"github.com/kbukum/taskstats/observability"
	"github.com/kbukum/taskstats/scheduler"
	"github.com/kbukum/taskstats/server"
	"github.com/kbukum/taskstats/task"
	"github.com/kbukum/taskstats/validation"
	"github.com/kbukum/taskstats/version"
)

const serviceName = "taskstats"

// AppConfig is the full taskstats configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Source    task.Config          `yaml:"source" mapstructure:"source"`
	Scheduler SchedulerConfig      `yaml:"scheduler" mapstructure:"scheduler"`
	Server    server.Config        `yaml:"server" mapstructure:"server"`
	Metrics   observability.Config `yaml:"metrics" mapstructure:"metrics"`
}

// SchedulerConfig sizes the background fetch pool.
type SchedulerConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0,lte=64"`
}

// PoolConfig returns the io pool settings.
func (c SchedulerConfig) PoolConfig() scheduler.PoolConfig {
	return scheduler.PoolConfig{Name: "io", Workers: c.Workers}
}

// ApplyDefaults fills unset fields in every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Source.ApplyDefaults()
	if c.Scheduler.Workers == 0 {
		c.Scheduler.Workers = 4
	}
	c.Server.ApplyDefaults()
	c.Metrics.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("config.source: %w", err)
	}
	if err := validation.Validate(&c.Scheduler); err != nil {
		return fmt.Errorf("config.scheduler: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("config.metrics: %w", err)
	}
	return nil
}

func (c *AppConfig) serviceInfo() observability.ServiceInfo {
	return observability.ServiceInfo{
		Name:        c.Name,
		Version:     c.Version,
		Environment: c.Environment,
	}
}
