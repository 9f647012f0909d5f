package logger

import "go.uber.org/zap"

// ContextLogger carries a fixed set of key-value pairs (component name,
// request id, ...) that are attached to every message it emits.
type ContextLogger struct {
	sugaredZapLogger *zap.SugaredLogger
}

func NewContextLogger() *ContextLogger {
	return &ContextLogger{
		sugaredZapLogger: SugaredZapLogger,
	}
}

// With returns a new logger, the receiver keeps its own context.
func (l *ContextLogger) With(args ...interface{}) *ContextLogger {
	return &ContextLogger{
		sugaredZapLogger: l.sugaredZapLogger.With(args...),
	}
}

func (l *ContextLogger) Debugf(template string, args ...interface{}) {
	l.sugaredZapLogger.Debugf(template, args...)
}

func (l *ContextLogger) Infof(template string, args ...interface{}) {
	l.sugaredZapLogger.Infof(template, args...)
}

func (l *ContextLogger) Warnf(template string, args ...interface{}) {
	l.sugaredZapLogger.Warnf(template, args...)
}

func (l *ContextLogger) Errorf(template string, args ...interface{}) {
	l.sugaredZapLogger.Errorf(template, args...)
}
