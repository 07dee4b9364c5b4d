package configsdatabase

import (
	"errors"
	"fmt"

	"formkit.link/configs"
	"formkit.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

var db *gorm.DB

// Open ayarlardaki sürücüye göre yeni bir gorm bağlantısı açar.
// SQLite, cgo gerektirmeyen modernc sürücüsü ("sqlite") üzerinden çalışır.
func Open(cfg *configs.AppConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if !cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	switch cfg.DBDriver {
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		return OpenSQLite(cfg.DBPath, gormCfg)
	default:
		return nil, fmt.Errorf("desteklenmeyen veritabanı sürücüsü: %s", cfg.DBDriver)
	}
}

// OpenSQLite verilen dosya yolunda bir SQLite veritabanı açar.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite dosya yolu boş olamaz")
	}
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	conn, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// SQLite tek yazıcıyla çalışır.
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}

// InitDB paylaşılan veritabanı bağlantısını kurar; başarısız olursa süreci sonlandırır.
func InitDB() {
	cfg := configs.GetConfig()
	conn, err := Open(cfg)
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.String("driver", cfg.DBDriver), zap.Error(err))
		return
	}
	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu (%s)", cfg.DBDriver)
}

// SetDB paylaşılan bağlantıyı dışarıdan belirler.
func SetDB(conn *gorm.DB) {
	db = conn
}

// GetDB paylaşılan bağlantıyı döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Veritabanı başlatılmadan GetDB çağrıldı")
	}
	return db
}

// CloseDB paylaşılan bağlantıyı kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Veritabanı bağlantısı alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
		return
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı")
}
