package configsstorage

import (
	"context"
	"fmt"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/pkg/blobstore"

	"go.uber.org/zap"
)

var store blobstore.Store

// Open ayarlardaki STORAGE_DRIVER değerine göre bir blob deposu oluşturur.
func Open(ctx context.Context, cfg *configs.AppConfig) (blobstore.Store, error) {
	switch cfg.StorageDriver {
	case "disk", "":
		return blobstore.NewDiskStore(cfg.StorageDiskDir, cfg.BaseURL+"/files")
	case "gcs":
		return blobstore.NewGCSStore(ctx, cfg.StorageBucket, cfg.StorageURLTTL)
	case "s3":
		return blobstore.NewS3Store(cfg.StorageBucket, cfg.StorageRegion, cfg.StorageURLTTL)
	default:
		return nil, fmt.Errorf("desteklenmeyen depolama sürücüsü: %s", cfg.StorageDriver)
	}
}

// InitBlobStore paylaşılan blob deposunu kurar; başarısız olursa süreci sonlandırır.
func InitBlobStore() {
	cfg := configs.GetConfig()
	s, err := Open(context.Background(), cfg)
	if err != nil {
		configslog.Log.Fatal("Blob deposu başlatılamadı", zap.String("driver", cfg.StorageDriver), zap.Error(err))
		return
	}
	store = s
	configslog.SLog.Infof("Blob deposu hazır (%s)", cfg.StorageDriver)
}

// SetBlobStore paylaşılan depoyu dışarıdan belirler.
func SetBlobStore(s blobstore.Store) {
	store = s
}

// GetBlobStore paylaşılan depoyu döndürür.
func GetBlobStore() blobstore.Store {
	if store == nil {
		configslog.Log.Fatal("Blob deposu başlatılmadan GetBlobStore çağrıldı")
	}
	return store
}
