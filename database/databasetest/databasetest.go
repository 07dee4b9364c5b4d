// Package databasetest testler için geçici dizinde, migrasyonları uygulanmış bir SQLite veritabanı açar.
package databasetest

import (
	"path/filepath"
	"testing"

	"formkit.link/configs/configsdatabase"
	"formkit.link/database/migrations"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open testin sonunda kapatılan yeni bir veritabanı döndürür.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := configsdatabase.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	require.NoError(t, migrations.All(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
