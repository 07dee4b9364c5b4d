package services

import (
	"context"
	"fmt"
	"time"

	"formkit.link/configs/configslog"
	"formkit.link/configs/configsstorage"
	"formkit.link/models"
	"formkit.link/pkg/blobstore"
	"formkit.link/repositories"

	"go.uber.org/zap"
)

// ISubmissionService yanıt gönderme ve okuma işlemleri için arayüz.
type ISubmissionService interface {
	NewSheet(form *models.Form) *ResponseSheet
	Submit(ctx context.Context, form *models.Form, sheet *ResponseSheet, respondent models.RespondentInfo) (*models.Submission, error)
	ListResponses(ctx context.Context, formID string) ([]models.Submission, error)
	GetResponse(ctx context.Context, id string) (*models.Submission, error)
}

// SubmissionService ISubmissionService arayüzünü uygular.
type SubmissionService struct {
	repo  repositories.ISubmissionRepository
	blobs blobstore.Store
	now   func() time.Time
}

// NewSubmissionService paylaşılan bağlantı ve blob deposuyla bir SubmissionService oluşturur.
func NewSubmissionService() ISubmissionService {
	return NewSubmissionServiceWith(repositories.NewSubmissionRepository(), configsstorage.GetBlobStore())
}

// NewSubmissionServiceWith bağımlılıkları dışarıdan alır.
func NewSubmissionServiceWith(repo repositories.ISubmissionRepository, blobs blobstore.Store) *SubmissionService {
	return &SubmissionService{repo: repo, blobs: blobs, now: time.Now}
}

// NewSheet form için boş bir yanıt sayfası açar.
func (s *SubmissionService) NewSheet(form *models.Form) *ResponseSheet {
	return NewResponseSheet(form.ID, s.blobs)
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	default:
		return false
	}
}

// Submit yanıtları kaydeder. Responses alan etiketine göre, alan sırasıyla doldurulur;
// aynı etiketi taşıyan alanlarda sonraki alanın değeri kalır. FieldResponses aynı değerleri
// örnek ID'sine göre kayıpsız tutar. Boş yanıtlar kaydedilmez.
func (s *SubmissionService) Submit(ctx context.Context, form *models.Form, sheet *ResponseSheet, respondent models.RespondentInfo) (*models.Submission, error) {
	if form == nil || form.ID == "" {
		return nil, fmt.Errorf("%w: form belirtilmedi", ErrInvalidInput)
	}
	if sheet == nil {
		sheet = s.NewSheet(form)
	}

	values := sheet.Values()
	files := sheet.Files()
	responses := map[string]any{}
	fieldResponses := map[string]any{}
	filePaths := map[string]any{}
	for _, field := range form.Fields {
		v, ok := values[field.InstanceID]
		if !ok || isEmptyValue(v) {
			continue
		}
		responses[field.CustomLabel] = v
		fieldResponses[field.InstanceID] = v
		if p, ok := files[field.InstanceID]; ok {
			filePaths[field.InstanceID] = p
		}
	}

	submission := &models.Submission{
		FormID:         form.ID,
		Respondent:     respondent,
		Responses:      responses,
		FieldResponses: fieldResponses,
		FilePaths:      filePaths,
		SubmittedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		configslog.Log.Error("Yanıt kaydedilemedi", zap.String("formID", form.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	configslog.SLog.Infof("Yanıt kaydedildi: form %s, yanıt %s, %d alan", form.ID, submission.ID, len(fieldResponses))
	return submission, nil
}

// ListResponses bir forma ait tüm yanıtları döndürür; yanıt yoksa boş dilim döner.
func (s *SubmissionService) ListResponses(ctx context.Context, formID string) ([]models.Submission, error) {
	list, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return list, nil
}

// GetResponse tek bir yanıtı getirir ve dosya alanlarının URL'lerini depodan yeniler.
func (s *SubmissionService) GetResponse(ctx context.Context, id string) (*models.Submission, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	s.refreshFileURLs(ctx, submission)
	return submission, nil
}

// refreshFileURLs süresi dolmuş olabilecek URL'leri yeniden üretir. Hata olursa kayıtlı URL kalır.
func (s *SubmissionService) refreshFileURLs(ctx context.Context, submission *models.Submission) {
	if s.blobs == nil || len(submission.FilePaths) == 0 {
		return
	}
	if submission.FieldResponses == nil {
		submission.FieldResponses = map[string]any{}
	}
	for fieldID, raw := range submission.FilePaths {
		objectPath, ok := raw.(string)
		if !ok || objectPath == "" {
			continue
		}
		url, err := s.blobs.URL(ctx, objectPath)
		if err != nil {
			configslog.Log.Warn("Yanıt dosyası URL'i yenilenemedi", zap.String("path", objectPath), zap.Error(err))
			continue
		}
		submission.FieldResponses[fieldID] = url
	}
}

var _ ISubmissionService = (*SubmissionService)(nil)
