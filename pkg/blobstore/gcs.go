package blobstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
)

var _ Store = (*GCSStore)(nil)

// GCSStore nesneleri bir Google Cloud Storage bucket'ında tutar ve imzalı URL üretir.
type GCSStore struct {
	client     *storage.Client
	bucketName string
	urlTTL     time.Duration
}

// NewGCSStore varsayılan kimlik bilgileriyle bir GCS istemcisi açar.
func NewGCSStore(ctx context.Context, bucketName string, urlTTL time.Duration) (*GCSStore, error) {
	if bucketName == "" {
		return nil, errors.New("blobstore: gcs bucket adı boş olamaz")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: client, bucketName: bucketName, urlTTL: urlTTL}, nil
}

func (g *GCSStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	cleaned, err := CleanPath(objectPath)
	if err != nil {
		return err
	}
	w := g.client.Bucket(g.bucketName).Object(cleaned).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// URL V4 imzalı bir GET adresi döndürür.
func (g *GCSStore) URL(ctx context.Context, objectPath string) (string, error) {
	cleaned, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	bucket := g.client.Bucket(g.bucketName)
	if _, err := bucket.Object(cleaned).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return bucket.SignedURL(cleaned, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(g.urlTTL),
	})
}

func (g *GCSStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	cleaned, err := CleanPath(objectPath)
	if err != nil {
		return nil, err
	}
	rc, err := g.client.Bucket(g.bucketName).Object(cleaned).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rc, nil
}

// Close alttaki istemciyi kapatır.
func (g *GCSStore) Close() error {
	return g.client.Close()
}
