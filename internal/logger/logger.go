// Package logger configures the process-wide logrus logger.
package logger

import (
	"github.com/sirupsen/logrus"
)

// Init returns a logger configured with the given level and format.
// Unknown levels fall back to info; any format other than "json" selects
// the text formatter.
func Init(level, format string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// WithComponent tags a logger with the component emitting the entries.
func WithComponent(log logrus.FieldLogger, component string) logrus.FieldLogger {
	return log.WithField("component", component)
}
