package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// InitLogger sets up the process logger at the given level.
// It may be called again to change the level after startup.
func InitLogger(level logrus.Level) *logrus.Logger {
	l := GetLogger()
	l.SetLevel(level)
	return l
}

// GetLogger returns the process logger, creating it with defaults on first use.
func GetLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

// ParseLevel is logrus.ParseLevel with an empty string mapped to info.
func ParseLevel(level string) (logrus.Level, error) {
	if level == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(level)
}
