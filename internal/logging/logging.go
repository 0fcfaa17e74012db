package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger configured from the TREND_LOG_LEVEL environment
// variable (default info). Pipeline stages share one instance per run.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(level())
	return logger
}

func level() logrus.Level {
	lvl, err := logrus.ParseLevel(os.Getenv("TREND_LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
