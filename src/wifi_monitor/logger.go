package wifi_monitor

import (
	"github.com/sirupsen/logrus"
)

// Module-level logger with pre-configured module field
var logger = logrus.WithField("module", "wifi_monitor")

// GetLogger returns a logger instance for the wifi_monitor module
func GetLogger() *logrus.Entry {
	return logger
}
