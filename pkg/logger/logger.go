package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Packages may log before Init runs; the
// zero configuration is logrus' defaults.
var Log = logrus.New()

// Init configures the global logger from the environment.
// Call it once from main before any work starts.
func Init() {
	Log = logrus.New()

	// LOG_LEVEL defaults to "info"; "debug" shows per-record decode traces.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// Command output goes to stdout, diagnostics stay on stderr.
	Log.SetOutput(os.Stderr)
}
