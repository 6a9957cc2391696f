package plugin

import (
	log "github.com/sirupsen/logrus"
)

// NewLogger creates the logger used by the plugin when none is passed to New.
func NewLogger(level log.Level) *log.Logger {
	logger := log.New()
	customFormatter := new(log.TextFormatter)

	customFormatter.TimestampFormat = "15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.ForceColors = true
	logger.SetFormatter(customFormatter)
	logger.SetLevel(level)
	return logger
}
