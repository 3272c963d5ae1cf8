// Package logger provides a structured logging facility based on Zap.
//
// Debug level selects the development config; every other level the
// production one. Format "console" switches to a colored console encoder.
// Keys are fixed to level, time and message so log shipping does not depend
// on the environment.
//
// WithRayID attaches the request's RayID (set by the rayid middleware) so all
// lines of a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
