// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates seamlessly with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID tags a logger with the ray id the rayid middleware stored on a Fiber
// context. WithRunID does the same for a combine run outside of any request.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: any zap level name; debug selects the development preset
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Combined ruleset")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
