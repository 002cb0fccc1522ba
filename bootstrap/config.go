package bootstrap

import (
	"github.com/kbukum/taskstats/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies
// GetServiceConfig through promotion and only needs ApplyDefaults and
// Validate that call through to the embedded ones.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
