package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Component names used as the "component" field of log entries.
const (
	LogApp     = "APP"
	LogService = "MAZE-SERVICE"
	LogStore   = "STORE"
	LogCLI     = "CLI"
)

// NewLogger returns a logrus entry tagged with component, writing to out at
// the given level. An unknown level falls back to info.
func NewLogger(component, level string, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger.WithField("component", component)
}
