// Package logging build the structured loggers used across the service.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New create process logger. Release mode log as JSON, otherwise human readable text.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if gin.Mode() == gin.ReleaseMode {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		logger.Warnf("unknown LOG_LEVEL %q, fallback to info", level)
	}
	logger.SetLevel(lvl)

	return logger
}

// Discard return logger that drop everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// AuthLogPath is where authentication attempts are appended when audit logging is on.
const AuthLogPath = "log/auth.log"

// NewAuthAudit return logger for authentication attempts. When disabled it drop everything,
// otherwise it append JSON lines to path, creating parent directory as needed.
func NewAuthAudit(enabled bool, path string) (*logrus.Logger, error) {
	if !enabled {
		return Discard(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	// #nosec G304 -- path comes from process configuration
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	logger.SetLevel(logrus.DebugLevel)
	return logger, nil
}
