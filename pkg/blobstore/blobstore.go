// Package blobstore form logoları ve yanıt dosyaları için ikili nesne deposu sürücülerini içerir.
// Her sürücü aynı üç işlemi sunar: yola yükleme, yolu erişilebilir bir URL'e çözme ve akış olarak okuma.
package blobstore

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	// ErrNotFound istenen nesne depoda yok.
	ErrNotFound = errors.New("blobstore: nesne bulunamadı")
	// ErrInvalidPath boş, mutlak veya üst dizine çıkan yol.
	ErrInvalidPath = errors.New("blobstore: geçersiz nesne yolu")
)

// Store ikili nesne deposu arayüzü.
type Store interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	URL(ctx context.Context, objectPath string) (string, error)
	Open(ctx context.Context, objectPath string) (io.ReadCloser, error)
}

// CleanPath nesne yolunu normalize eder ve depo dışına çıkan yolları reddeder.
func CleanPath(objectPath string) (string, error) {
	p := strings.TrimSpace(strings.ReplaceAll(objectPath, "\\", "/"))
	if p == "" || strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

// ObjectName kullanıcıdan gelen dosya adını tek bir güvenli yol parçasına indirger.
func ObjectName(fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20, r == '/', r == '?', r == '#', r == '%':
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
