package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used by services and jobs.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LogrusLogger implements Logger on top of a logrus entry.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a JSON logger writing to stdout at the given level.
// Unknown levels fall back to info.
func NewLogrusLogger(level string) *LogrusLogger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	return &LogrusLogger{entry: logrus.NewEntry(base)}
}

// FromEntry wraps an existing logrus entry, keeping its fields.
func FromEntry(entry *logrus.Entry) *LogrusLogger {
	return &LogrusLogger{entry: entry}
}

// WithField returns a logger that adds key to every line.
func (l *LogrusLogger) WithField(key string, value interface{}) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

// Entry exposes the underlying logrus entry for middleware that logs with fields.
func (l *LogrusLogger) Entry() *logrus.Entry {
	return l.entry
}

func (l *LogrusLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *LogrusLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *LogrusLogger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *LogrusLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// NewDiscardLogger returns a logger that drops everything. Used in tests.
func NewDiscardLogger() *LogrusLogger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return &LogrusLogger{entry: logrus.NewEntry(base)}
}
