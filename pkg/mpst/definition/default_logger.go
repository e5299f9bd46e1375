package definition

import "github.com/sirupsen/logrus"

// DefaultLogger is the Logger implementation used when the caller
// does not provide their own, backed by logrus.
type DefaultLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger builds a DefaultLogger writing structured fields
// through logrus's standard logger, tagged with the "mpst" component.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{entry: logrus.WithField("component", "mpst")}
}

// ToggleDebug flips the underlying logger's minimum level between
// Info and Debug.
func (l *DefaultLogger) ToggleDebug(enabled bool) {
	if enabled {
		l.entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		l.entry.Logger.SetLevel(logrus.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}
