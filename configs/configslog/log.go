package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) logger, SLog ise printf tarzı sugared logger.
// InitLogger çağrılana kadar ikisi de no-op'tur; testler ve paketler güvenle loglayabilir.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger APP_ENV ve LOG_LEVEL değerlerine göre global logger'ları kurar.
func InitLogger() {
	var cfg zap.Config
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// Logger kurulamazsa no-op ile devam et, süreci düşürme.
		return
	}
	Log = logger
	SLog = logger.Sugar()
	zap.ReplaceGlobals(logger)
}

// SyncLogger tamponlanmış log kayıtlarını boşaltır.
func SyncLogger() {
	_ = Log.Sync()
}
