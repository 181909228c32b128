package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
)

type ZapLogger struct {
	log *zap.SugaredLogger
}

var zapLogger atomic.Pointer[ZapLogger]

func NewLogger(config zap.Config) (*ZapLogger, error) {
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return SetZap(logger), nil
}

// SetZap replaces the package logger. Tests use it with zap.NewNop() or an
// observer core.
func SetZap(logger *zap.Logger) *ZapLogger {
	logger = logger.WithOptions(zap.AddCallerSkip(2))
	l := &ZapLogger{log: logger.Sugar()}
	zapLogger.Store(l)
	return l
}

func GetLogger() *ZapLogger {
	l := zapLogger.Load()
	if l == nil {
		panic("logger not initialized")
	}
	return l
}

func (l *ZapLogger) Panic(message string, values ...any) {
	l.log.Panicw(message, values...)
}

func (l *ZapLogger) Fatal(error error, values ...any) {
	l.log.Fatalw(error.Error(), values...)
}

func (l *ZapLogger) Info(message string, values ...any) {
	l.log.Infow(message, values...)
}

func (l *ZapLogger) Warn(message string, values ...any) {
	l.log.Warnw(message, values...)
}

func (l *ZapLogger) Error(message string, values ...any) {
	l.log.Errorw(message, values...)
}

func (l *ZapLogger) Debug(message string, values ...any) {
	l.log.Debugw(message, values...)
}

func (l *ZapLogger) Printf(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}
