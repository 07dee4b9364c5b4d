package seeders

import (
	"errors"
	"strings"

	"formkit.link/configs/configslog"
	"formkit.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser verilen e-posta ile sistem kullanıcısını oluşturur veya şifresini günceller.
// E-posta ya da şifre boşsa hiçbir şey yapmaz.
func SeedSystemUser(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		configslog.SLog.Info("SYSTEM_USER_EMAIL/SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı atlanıyor.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	switch {
	case result.Error == nil:
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) == nil && existing.IsSystem {
			configslog.SLog.Debugf("Sistem kullanıcısı '%s' güncel, değişiklik yok.", email)
			return nil
		}
		updates := map[string]any{"password_hash": string(hash), "is_system": true, "status": true}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.String("email", email), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı '%s' güncellendi.", email)
		return nil
	case !errors.Is(result.Error, gorm.ErrRecordNotFound):
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.String("email", email), zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Name:         "System",
		Email:        email,
		PasswordHash: string(hash),
		IsSystem:     true,
		Status:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı '%s' oluşturuldu (ID: %s).", email, user.ID)
	return nil
}
