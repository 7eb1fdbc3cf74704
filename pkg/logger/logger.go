package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/johnquangdev/crm-backend/pkg/config"
)

// New builds the application logger. Development gets a human-readable
// console logger; production gets JSON. When LOG_FILE is set, output is
// rotated with lumberjack.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.File == "" {
		if cfg.Server.Environment == "production" {
			return zap.NewProduction()
		}
		return zap.NewDevelopment()
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), zap.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), zap.InfoLevel),
	)

	return zap.New(core), nil
}
