package database

import (
	"path/filepath"
	"testing"

	"formkit.link/configs"
	"formkit.link/configs/configsdatabase"
	"formkit.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestInitialize_MigrateAndSeed(t *testing.T) {
	db, err := configsdatabase.OpenSQLite(filepath.Join(t.TempDir(), "init.db"), nil)
	require.NoError(t, err)

	cfg := &configs.AppConfig{SystemUserEmail: "Admin@Example.com ", SystemUserPassword: "s3cret"}
	require.NoError(t, Initialize(db, cfg, true, true))

	for _, table := range []any{&models.User{}, &models.Form{}, &models.Submission{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	var user models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&user).Error)
	assert.True(t, user.IsSystem)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))

	// İkinci çalıştırma aynı kullanıcıyı tekrar oluşturmamalı, şifreyi güncellemeli.
	cfg.SystemUserPassword = "changed"
	require.NoError(t, Initialize(db, cfg, true, true))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("changed")))
}

func TestInitialize_NoFlags(t *testing.T) {
	db, err := configsdatabase.OpenSQLite(filepath.Join(t.TempDir(), "noop.db"), nil)
	require.NoError(t, err)
	require.NoError(t, Initialize(db, &configs.AppConfig{}, false, false))
	assert.False(t, db.Migrator().HasTable(&models.User{}))
}

func TestSeed_SkipsWithoutCredentials(t *testing.T) {
	db, err := configsdatabase.OpenSQLite(filepath.Join(t.TempDir(), "skip.db"), nil)
	require.NoError(t, err)
	require.NoError(t, Initialize(db, &configs.AppConfig{}, true, true))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
