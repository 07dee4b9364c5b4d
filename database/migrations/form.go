package migrations

import (
	"formkit.link/configs/configslog"
	"formkit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateFormsTable alan listesi JSON sütununda tutulduğu için tek tablo yeterlidir.
func MigrateFormsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating forms table...")
	if err := db.AutoMigrate(&models.Form{}); err != nil {
		configslog.Log.Error("Failed to migrate forms table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Forms table migrated successfully")
	return nil
}
