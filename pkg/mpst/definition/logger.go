// Package definition holds the pluggable ambient concerns the merge
// engine is configured with: logging and metrics.
package definition

// Logger is the interface the merge driver logs through, so that any
// logging backend a caller already wires into the rest of their
// service can be reused here.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything. Used as the zero-configuration
// default for merges that don't care about tracing backtracking.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
