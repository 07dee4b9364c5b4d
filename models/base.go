package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context içinde taşır.
const ContextUserIDKey contextKey = "user_id"

// BaseModel tüm tabloların ortak alanları. ID kayıt oluşturulmadan önce üretilir,
// böylece belge tek yazımda kendi kimliğini içerir.
type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy *string   `gorm:"type:varchar(36);index" json:"createdBy,omitempty"`
}

// BeforeCreate boş ID'ye UUID atar ve context'teki kullanıcıyı CreatedBy olarak işler.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedBy == nil {
		if userID, ok := UserIDFromContext(tx.Statement.Context); ok {
			b.CreatedBy = &userID
		}
	}
	return nil
}

// ContextWithUserID kullanıcı ID'sini context'e ekler.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini okur.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	userID, ok := ctx.Value(ContextUserIDKey).(string)
	return userID, ok && userID != ""
}
