package utils

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// InitLogger builds the process logger for the given environment:
// production JSON at info level, otherwise colored development output at
// debug level.
func InitLogger(env string) *zap.Logger {
	loggerOnce.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	})
	return logger
}

// GetLogger retrieves the process logger, building a development one if
// InitLogger was never called (tests, mostly).
func GetLogger() *zap.Logger {
	if logger == nil {
		return InitLogger("development")
	}
	return logger
}
