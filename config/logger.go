package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger from environment
// variables. LOG_LEVEL defaults to info; LOG_FORMAT=json switches to
// JSON output for log shippers.
func InitLogger() {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if os.Getenv("LOG_FORMAT") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
