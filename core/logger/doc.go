// Package logger provides a structured logging facility based on Zap.
//
// A single constructor builds the logger used by both the batch command and the
// HTTP server. Debug level selects the development configuration; every other level
// uses the production configuration with the requested minimum level.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber context and
// attaches it to the entry, so that every log line produced while serving a request
// can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Run started", zap.String("run_id", id))
package logger
