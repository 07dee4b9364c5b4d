package services

import (
	"errors"
	"fmt"

	"formkit.link/repositories"
)

// ServiceError servis katmanının döndürdüğü sabit hata türü.
// Alttaki sürücü hatası fmt.Errorf("%w: %v", ...) ile eklenir, çağıran errors.Is ile ayırt eder.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

const (
	ErrAuth          ServiceError = "kimlik doğrulama başarısız"
	ErrPersistence   ServiceError = "kayıt işlemi başarısız"
	ErrUpload        ServiceError = "dosya yüklenemedi"
	ErrNotFound      ServiceError = "kayıt bulunamadı"
	ErrEmailTaken    ServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrDraftNotFound ServiceError = "taslak bulunamadı"
	ErrInvalidInput  ServiceError = "geçersiz girdi verisi"
)

// wrapRepoError repository hatasını servis taksonomisine çevirir.
func wrapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
