package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "portfolio-api"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests and tools that never call InitLogger still get a usable logger.
func init() {
	InitLogger("dev", "info", "text")
}

// InitLogger rebuilds the global logger. Unknown levels fall back to info.
func InitLogger(env, level, format string) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log = logger.WithFields(logrus.Fields{"service": serviceName, "env": env})
}
