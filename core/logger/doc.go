// Package logger provides a structured logging facility based on Zap.
//
// New builds a development or production zap configuration from Config.
// Console encoding is meant for the CLI, json for the HTTP service. Logs go
// to stderr so command output on stdout stays machine readable.
//
// # Context Awareness
//
// WithRayID extracts the request id placed in fiber locals by the rayid
// middleware and attaches it to the logger, so every line of a request can be
// correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Compaction failed", zap.Error(err))
package logger
