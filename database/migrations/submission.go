package migrations

import (
	"formkit.link/configs/configslog"
	"formkit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateSubmissionsTable submissions tablosunu oluşturur. form_id sadece indekslidir, yabancı anahtar yoktur.
func MigrateSubmissionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating submissions table...")
	if err := db.AutoMigrate(&models.Submission{}); err != nil {
		configslog.Log.Error("Failed to migrate submissions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Submissions table migrated successfully")
	return nil
}
