// internal/logging/logging.go
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable before Init is called
// (info level, JSON to stdout) so packages and tests never see a nil logger.
var Log = NewLogger("info")

// Init replaces the global logger's level.
func Init(level string) {
	Log.SetLevel(parseLevel(level))
}

// NewLogger creates a logger with a specific level.
func NewLogger(level string) *logrus.Logger {

	var log = logrus.New()

	// Set the log format.
	// Using JSON format for structured logging.
	log.SetFormatter(&logrus.JSONFormatter{})

	// Set the output.
	// Default is stderr, but can be set to a file.
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(level))

	return log
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
