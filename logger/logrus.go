package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config controls how a LogrusLogger formats and where it writes.
type Config struct {
	// Level is one of logrus' level names. Unknown values fall back to info.
	Level string

	// Format is "json" or "text".
	Format string

	// Output defaults to stdout.
	Output io.Writer
}

// LogrusLogger wraps a logrus logger to implement the Logger interface.
type LogrusLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusLogger creates a JSON logger writing to stdout.
func NewLogrusLogger(level string) *LogrusLogger {
	return New(Config{Level: level, Format: "json"})
}

// New creates a LogrusLogger from cfg.
func New(cfg Config) *LogrusLogger {
	logger := logrus.New()

	switch strings.ToLower(cfg.Format) {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			DisableColors:    true,
			QuoteEmptyFields: true,
		})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.Output != nil {
		logger.SetOutput(cfg.Output)
	} else {
		logger.SetOutput(os.Stdout)
	}

	logLevel, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return &LogrusLogger{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// Debug logs a debug-level message.
func (l *LogrusLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entryFor(ctx, fields).Debug(msg)
}

// Info logs an info-level message.
func (l *LogrusLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entryFor(ctx, fields).Info(msg)
}

// Warn logs a warning-level message.
func (l *LogrusLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entryFor(ctx, fields).Warn(msg)
}

// Error logs an error-level message.
func (l *LogrusLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entryFor(ctx, fields).Error(msg)
}

// WithField returns a new logger with the given field added.
func (l *LogrusLogger) WithField(key string, value interface{}) Logger {
	return &LogrusLogger{
		logger: l.logger,
		entry:  l.entry.WithField(key, value),
	}
}

// WithFields returns a new logger with the given fields added.
func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{
		logger: l.logger,
		entry:  l.entry.WithFields(fields),
	}
}

func (l *LogrusLogger) entryFor(ctx context.Context, fields map[string]interface{}) *logrus.Entry {
	entry := l.entry
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	return entry
}
