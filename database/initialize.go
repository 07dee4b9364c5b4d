package database

import (
	"errors"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/database/migrations"
	"formkit.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek bir transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa tüm işlem geri alınır.
func Initialize(db *gorm.DB, cfg *configs.AppConfig, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
			if err := migrations.All(tx); err != nil {
				configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrasyonlar tamamlandı.")
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
			if err := CheckAndRunSeeders(tx, cfg); err != nil {
				configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeder'lar tamamlandı.")
		} else {
			configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Warn("Başlatma sırasında hata oluştuğu için işlem geri alındı", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

// CheckAndRunSeeders seed verilerini oluşturur.
func CheckAndRunSeeders(db *gorm.DB, cfg *configs.AppConfig) error {
	if cfg == nil {
		return errors.New("seeder için ayarlar gerekli")
	}
	configslog.SLog.Info("Sistem kullanıcısı kontrol ediliyor/oluşturuluyor/güncelleniyor...")
	if err := seeders.SeedSystemUser(db, cfg.SystemUserEmail, cfg.SystemUserPassword); err != nil {
		configslog.Log.Error("Sistem kullanıcısı seed/update işlemi başarısız", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
