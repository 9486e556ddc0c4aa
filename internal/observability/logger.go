package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the narrow logging surface the services depend on.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type ZapLogger struct {
	sugar *zap.SugaredLogger
}

func NewLogger() *ZapLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Info(msg string)  { l.sugar.Info(msg) }
func (l *ZapLogger) Warn(msg string)  { l.sugar.Warn(msg) }
func (l *ZapLogger) Error(msg string) { l.sugar.Error(msg) }

func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}
