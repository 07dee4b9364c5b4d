package blobstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var _ Store = (*DiskStore)(nil)

// DiskStore nesneleri yerel bir dizinde tutar. URL'ler uygulamanın /files rotasını gösterir.
type DiskStore struct {
	baseDir       string
	publicBaseURL string
}

// NewDiskStore baseDir altında çalışan bir depo oluşturur.
// publicBaseURL örneğin "http://localhost:3000/files" olmalıdır.
func NewDiskStore(baseDir, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{baseDir: baseDir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (d *DiskStore) fullPath(objectPath string) (string, error) {
	cleaned, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.baseDir, filepath.FromSlash(cleaned)), nil
}

// Upload içeriği önce geçici bir dosyaya yazar, sonra yerine taşır.
func (d *DiskStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	target, err := d.fullPath(objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// URL nesnenin var olduğunu doğrular ve /files altındaki adresini döndürür.
func (d *DiskStore) URL(ctx context.Context, objectPath string) (string, error) {
	target, err := d.fullPath(objectPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	cleaned, _ := CleanPath(objectPath)
	segments := strings.Split(cleaned, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return d.publicBaseURL + "/" + strings.Join(segments, "/"), nil
}

// Open nesneyi okumak için açar. Çağıran kapatmaktan sorumludur.
func (d *DiskStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	target, err := d.fullPath(objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}
