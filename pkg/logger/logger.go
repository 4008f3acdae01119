package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	Level       string
	ServiceName string
}

var (
	global = zap.NewNop()
	once   sync.Once
)

// Init 初始化全局 logger，只生效一次。debug 级别使用开发模式输出。
func Init(cfg Config) error {
	var initErr error
	once.Do(func() {
		lvl := parseLevel(cfg.Level)

		zcfg := zap.NewProductionConfig()
		if lvl == zapcore.DebugLevel {
			zcfg = zap.NewDevelopmentConfig()
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)

		l, err := zcfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			initErr = err
			return
		}
		if cfg.ServiceName != "" {
			l = l.With(zap.String("service", cfg.ServiceName))
		}
		global = l
	})
	return initErr
}

// L 返回全局 logger
func L() *zap.Logger { return global }

// Set 替换全局 logger（测试用）
func Set(l *zap.Logger) { global = l }

func Debug(msg string, fields ...zap.Field) { global.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { global.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { global.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { global.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { global.Fatal(msg, fields...) }

// Sync 刷新缓冲
func Sync() error { return global.Sync() }

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
