package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound aranan kayıt veritabanında yok.
var ErrNotFound = errors.New("kayıt bulunamadı")

type txKey struct{}

// ContextWithTx bir transaction'ı context'e ekler; repository'ler bu context'le çağrıldığında onu kullanır.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// dbFor context'te transaction varsa onu, yoksa varsayılan bağlantıyı döndürür.
func dbFor(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
