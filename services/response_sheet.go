package services

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"formkit.link/configs/configslog"
	"formkit.link/pkg/blobstore"
	"formkit.link/pkg/formdraft"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResponseSheet bir yanıtlayıcının form doldururken girdiği değerler. Anahtar alan örnek ID'sidir.
// Değer tekli alanlarda string, checkbox'ta []string olur. Eşzamanlı kullanım için güvenlidir.
type ResponseSheet struct {
	formID string
	// key her yanıt sayfasına özgüdür; aynı adlı dosyalar yanıtlayıcılar arasında çakışmaz.
	key   string
	blobs blobstore.Store

	mu     sync.Mutex
	values map[string]any
	files  map[string]string

	uploads singleflight.Group
}

// NewResponseSheet bir form için boş yanıt sayfası oluşturur.
func NewResponseSheet(formID string, blobs blobstore.Store) *ResponseSheet {
	return &ResponseSheet{
		formID: formID,
		key:    uuid.NewString(),
		blobs:  blobs,
		values: map[string]any{},
		files:  map[string]string{},
	}
}

// UserFilePath yanıtlayıcı dosyasının depodaki yolunu üretir. sheetKey yanıt sayfasını ayırt eder.
func UserFilePath(formID, sheetKey, fieldID, fileName string) string {
	return "user-files/" + formID + "/" + sheetKey + "/" + fieldID + "_" + blobstore.ObjectName(fileName)
}

// SetResponse alanın değerini değiştirir.
func (s *ResponseSheet) SetResponse(fieldID, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[fieldID] = value
}

// SetSelections checkbox alanının seçimlerini topluca belirler. Boş seçim değeri kaldırır.
func (s *ResponseSheet) SetSelections(fieldID string, options []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(options) == 0 {
		delete(s.values, fieldID)
		return
	}
	s.values[fieldID] = slices.Clone(options)
}

// ToggleOption checkbox seçeneğini işaretler ya da kaldırır. İşaretli seçenek tekrar eklenmez.
// Son seçenek kaldırıldığında alan yanıtsız kalır.
func (s *ResponseSheet) ToggleOption(fieldID, option string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.values[fieldID].([]string)
	idx := slices.Index(current, option)
	switch {
	case checked && idx < 0:
		s.values[fieldID] = append(slices.Clone(current), option)
	case !checked && idx >= 0:
		next := slices.Delete(slices.Clone(current), idx, idx+1)
		if len(next) == 0 {
			delete(s.values, fieldID)
			return
		}
		s.values[fieldID] = next
	}
}

// AttachFile dosyayı yükler ve URL'ini alanın değeri yapar.
// Aynı alan için devam eden bir yükleme varsa yeni çağrı onun sonucunu bekler.
// Hata durumunda alanın önceki değeri korunur.
func (s *ResponseSheet) AttachFile(ctx context.Context, fieldID string, upload formdraft.Upload) (string, error) {
	v, err, _ := s.uploads.Do(fieldID, func() (any, error) {
		objectPath := UserFilePath(s.formID, s.key, fieldID, upload.FileName)
		if err := s.blobs.Upload(ctx, objectPath, bytes.NewReader(upload.Data), upload.ContentType); err != nil {
			configslog.Log.Error("Yanıt dosyası yüklenemedi", zap.String("path", objectPath), zap.Error(err))
			return "", fmt.Errorf("%w: %v", ErrUpload, err)
		}
		url, err := s.blobs.URL(ctx, objectPath)
		if err != nil {
			configslog.Log.Error("Yanıt dosyası URL'i alınamadı", zap.String("path", objectPath), zap.Error(err))
			return "", fmt.Errorf("%w: %v", ErrUpload, err)
		}
		s.mu.Lock()
		s.values[fieldID] = url
		s.files[fieldID] = objectPath
		s.mu.Unlock()
		return url, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Values değerlerin bağımsız bir kopyasını döndürür.
func (s *ResponseSheet) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		if list, ok := v.([]string); ok {
			out[k] = slices.Clone(list)
			continue
		}
		out[k] = v
	}
	return out
}

// Files yüklenen dosyaların alan ID'sine göre depo yollarını döndürür.
func (s *ResponseSheet) Files() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.files))
	for k, v := range s.files {
		out[k] = v
	}
	return out
}

// FormID sayfanın ait olduğu form.
func (s *ResponseSheet) FormID() string {
	return s.formID
}
