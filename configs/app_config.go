package configs

import (
	"errors"
	"strings"
	"sync"
	"time"

	"formkit.link/configs/configslog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AppConfig uygulamanın çalışma zamanı ayarlarıdır.
type AppConfig struct {
	Env     string
	Port    string
	BaseURL string

	DBDriver   string // postgres | sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string // sqlite dosya yolu

	JWTSecret  string
	SessionTTL time.Duration

	StorageDriver  string // disk | gcs | s3
	StorageDiskDir string
	StorageBucket  string
	StorageRegion  string
	StorageURLTTL  time.Duration

	SystemUserEmail    string
	SystemUserPassword string

	DraftCacheSize int
	UploadMaxBytes int
}

// DevJWTSecret yalnızca geliştirme için varsayılan imza anahtarıdır; üretimde kabul edilmez.
const DevJWTSecret = "formkit-dev-secret-change-me"

// ErrInsecureJWTSecret üretimde JWT_SECRET boş ya da varsayılan bırakıldığında döner.
var ErrInsecureJWTSecret = errors.New("JWT_SECRET üretim ortamında ayarlanmalıdır")

var (
	appConfig  *AppConfig
	configOnce sync.Once
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("APP_BASE_URL", "http://localhost:3000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "formkit")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "formkit.db")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("STORAGE_DRIVER", "disk")
	v.SetDefault("STORAGE_DISK_DIR", "storage")
	v.SetDefault("STORAGE_URL_TTL", "168h")
	v.SetDefault("DRAFT_CACHE_SIZE", 1024)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
}

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okuyarak ayarları üretir.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env dosyası bulunamadı, sadece ortam değişkenleri kullanılacak.")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return configFromViper(v)
}

func configFromViper(v *viper.Viper) *AppConfig {
	cfg := &AppConfig{
		Env:                v.GetString("APP_ENV"),
		Port:               v.GetString("APP_PORT"),
		BaseURL:            strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		DBPath:             v.GetString("DB_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		StorageDiskDir:     v.GetString("STORAGE_DISK_DIR"),
		StorageBucket:      v.GetString("STORAGE_BUCKET"),
		StorageRegion:      v.GetString("STORAGE_REGION"),
		StorageURLTTL:      v.GetDuration("STORAGE_URL_TTL"),
		SystemUserEmail:    v.GetString("SYSTEM_USER_EMAIL"),
		SystemUserPassword: v.GetString("SYSTEM_USER_PASSWORD"),
		DraftCacheSize:     v.GetInt("DRAFT_CACHE_SIZE"),
		UploadMaxBytes:     v.GetInt("UPLOAD_MAX_BYTES"),
	}

	if cfg.SessionTTL <= 0 {
		configslog.Log.Warn("Geçersiz SESSION_TTL, 24 saat kullanılıyor", zap.Duration("value", cfg.SessionTTL))
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.DraftCacheSize <= 0 {
		cfg.DraftCacheSize = 1024
	}
	return cfg
}

// GetConfig paylaşılan ayarları döndürür; ilk çağrıda yükler.
func GetConfig() *AppConfig {
	configOnce.Do(func() {
		if appConfig == nil {
			appConfig = LoadConfig()
		}
	})
	return appConfig
}

// SetConfig paylaşılan ayarları dışarıdan belirler (CLI ve testler için).
func SetConfig(cfg *AppConfig) {
	configOnce.Do(func() {})
	appConfig = cfg
}

// Validate çalıştırmadan önce güvenli olmayan ayarları reddeder.
func (c *AppConfig) Validate() error {
	if c.IsProduction() {
		secret := strings.TrimSpace(c.JWTSecret)
		if secret == "" || secret == DevJWTSecret {
			return ErrInsecureJWTSecret
		}
	}
	return nil
}

// IsProduction üretim ortamında çalışılıp çalışılmadığını bildirir.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
