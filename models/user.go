package models

// User form oluşturan (yazar) hesap.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(150);not null" json:"name"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsSystem     bool   `gorm:"default:false;index" json:"isSystem"`
	Status       bool   `gorm:"default:true;index" json:"status"`
}
