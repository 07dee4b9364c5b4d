package migrations

import "gorm.io/gorm"

// All tüm tabloları bağımlılık sırasıyla oluşturur.
func All(db *gorm.DB) error {
	for _, migrate := range []func(*gorm.DB) error{
		MigrateUsersTable,
		MigrateFormsTable,
		MigrateSubmissionsTable,
	} {
		if err := migrate(db); err != nil {
			return err
		}
	}
	return nil
}
