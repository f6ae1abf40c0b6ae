// Package logger holds the process-wide diagnostics logger. Human-facing
// progress output stays on plain stderr prints in the CLI; this logger
// carries absorbed failures and stage tracing.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Log.SetLevel(logrus.WarnLevel)
}

// Init sets the log level; unparsable levels fall back to warn.
func Init(levelStr string) {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.WarnLevel
	}
	Log.SetLevel(level)
}
