// Package logger provides structured logging using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. The statistics pipeline logs every stage
// (intent, action, result, state) at debug level through a logger tagged
// with its component name.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("statistics")
//	log.Debug("state", logger.StageFields(logger.FieldState, s))
package logger
