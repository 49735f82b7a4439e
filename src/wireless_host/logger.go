package wireless_host

import (
	"github.com/sirupsen/logrus"
)

// Module-level logger with pre-configured module field
var logger = logrus.WithField("module", "wireless_host")

// GetLogger returns a logger instance for the wireless_host module
func GetLogger() *logrus.Entry {
	return logger
}
