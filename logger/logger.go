package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const messageKey = "message"

// New builds a production JSON logger. Unknown levels fall back to info, the
// same default zap's production config uses.
func New(level string, outputPaths ...string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
	}
	cfg.EncoderConfig.MessageKey = messageKey

	return cfg.Build()
}
