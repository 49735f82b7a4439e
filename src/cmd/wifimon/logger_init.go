package main

import (
	"io"
	"strings"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/config_manager"
	"github.com/sirupsen/logrus"
)

// InitializeGlobalLogger configures the standard logrus logger from the
// configured level and format. Logs go to out, never to the status stream.
func InitializeGlobalLogger(logLevel, logFormat string, out io.Writer) {
	logrus.SetOutput(out)

	switch strings.ToLower(logFormat) {
	case config_manager.LogFormatJSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
		logrus.WithError(err).Warn("Failed to parse log level, defaulting to info")
	}
	logrus.SetLevel(level)

	logrus.WithFields(logrus.Fields{
		"log_level":  level.String(),
		"log_format": logFormat,
	}).Debug("Global logger initialized")
}
