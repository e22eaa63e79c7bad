package utils

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	logMu  sync.RWMutex
	logger = zap.NewNop()
)

// InitLogger builds the process logger. appEnv "production" selects the JSON
// encoder; anything else gets the console development config.
func InitLogger(appEnv, level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if strings.EqualFold(strings.TrimSpace(appEnv), "production") {
		cfg = zap.NewProductionConfig()
	}
	if lvl := strings.TrimSpace(level); lvl != "" {
		parsed, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Level = parsed
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	SetLogger(l)
	return l, nil
}

func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// L returns the shared logger.
func L() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// LogEvent writes a standardized line with module/action/request_id.
// Avoid logging form payloads; message should be summarized.
func LogEvent(requestID, module, action, message string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	}
	L().Info(message, append(base, fields...)...)
}

// LogWarn is LogEvent at warn level.
func LogWarn(requestID, module, action, message string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	}
	L().Warn(message, append(base, fields...)...)
}
