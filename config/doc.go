// Package config loads service configuration with Viper.
//
// LoadConfig reads config.yml from the standard locations (./cmd/<name>/,
// ./config/, ./), loads an optional .env file with godotenv, then lets
// environment variables override any key. Service configs embed
// ServiceConfig to get name, environment and logging settings.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("taskstats", &cfg, config.WithEnvPrefix("TASKSTATS"))
package config
