package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"formkit.link/configs/configslog"
	"formkit.link/configs/configsstorage"
	"formkit.link/models"
	"formkit.link/pkg/blobstore"
	"formkit.link/pkg/formdraft"
	"formkit.link/repositories"

	"go.uber.org/zap"
)

// FormListItem pano listesindeki bir form ve yanıt sayısı.
type FormListItem struct {
	models.FormSummary
	ResponseCount int64
}

// IFormService form yayınlama ve okuma işlemleri için arayüz.
type IFormService interface {
	Publish(ctx context.Context, ownerID string, draft *formdraft.Draft) (*models.Form, error)
	ListForms(ctx context.Context) ([]models.FormSummary, error)
	ListFormsWithCounts(ctx context.Context) ([]FormListItem, error)
	LoadForm(ctx context.Context, id string) (*models.Form, error)
	CountResponses(ctx context.Context, formID string) (int64, error)
}

// FormService IFormService arayüzünü uygular.
type FormService struct {
	repo        repositories.IFormRepository
	submissions repositories.ISubmissionRepository
	blobs       blobstore.Store
	now         func() time.Time
}

// NewFormService paylaşılan bağlantı ve blob deposuyla bir FormService oluşturur.
func NewFormService() IFormService {
	return NewFormServiceWith(
		repositories.NewFormRepository(),
		repositories.NewSubmissionRepository(),
		configsstorage.GetBlobStore(),
	)
}

// NewFormServiceWith bağımlılıkları dışarıdan alır.
func NewFormServiceWith(repo repositories.IFormRepository, submissions repositories.ISubmissionRepository, blobs blobstore.Store) *FormService {
	return &FormService{repo: repo, submissions: submissions, blobs: blobs, now: time.Now}
}

// LogoPath logonun depodaki yolunu üretir.
func LogoPath(at time.Time, fileName string) string {
	return "logos/" + strconv.FormatInt(at.UnixNano(), 10) + "_" + blobstore.ObjectName(fileName)
}

// Publish taslağı kalıcı bir forma çevirir: varsa logoyu yükler, ardından formu tek yazımda oluşturur.
// Taslak değiştirilmez; başarılı yayından sonra silmek çağıranın işidir.
func (s *FormService) Publish(ctx context.Context, ownerID string, draft *formdraft.Draft) (*models.Form, error) {
	if ownerID == "" {
		return nil, ErrAuth
	}
	if draft == nil {
		return nil, fmt.Errorf("%w: taslak boş", ErrInvalidInput)
	}

	form := &models.Form{
		CreatorUserID: ownerID,
		Title:         draft.Meta.Title,
		Description:   draft.Meta.Description,
		Fields:        draft.Fields(),
	}

	if logo := draft.Meta.Logo; logo != nil && len(logo.Data) > 0 {
		objectPath := LogoPath(s.now(), logo.FileName)
		if err := s.blobs.Upload(ctx, objectPath, bytes.NewReader(logo.Data), logo.ContentType); err != nil {
			configslog.Log.Error("Logo yüklenemedi", zap.String("path", objectPath), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		url, err := s.blobs.URL(ctx, objectPath)
		if err != nil {
			configslog.Log.Error("Logo URL'i alınamadı", zap.String("path", objectPath), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		form.LogoPath = objectPath
		form.LogoURL = url
	}

	ctx = models.ContextWithUserID(ctx, ownerID)
	if err := s.repo.Create(ctx, form); err != nil {
		configslog.Log.Error("Form kaydedilemedi", zap.String("ownerID", ownerID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	configslog.SLog.Infof("Form yayınlandı: ID %s, Başlık: %q, Alan sayısı: %d", form.ID, form.Title, len(form.Fields))
	return form, nil
}

// ListForms tüm formların özetlerini döndürür. Sıralama garanti edilmez.
func (s *FormService) ListForms(ctx context.Context) ([]models.FormSummary, error) {
	summaries, err := s.repo.FindAllSummaries(ctx)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return summaries, nil
}

// ListFormsWithCounts form özetlerini yanıt sayılarıyla birlikte döndürür.
func (s *FormService) ListFormsWithCounts(ctx context.Context) ([]FormListItem, error) {
	summaries, err := s.ListForms(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(summaries))
	for i, f := range summaries {
		ids[i] = f.ID
	}
	counts, err := s.submissions.CountByFormIDs(ctx, ids)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	items := make([]FormListItem, len(summaries))
	for i, f := range summaries {
		items[i] = FormListItem{FormSummary: f, ResponseCount: counts[f.ID]}
	}
	return items, nil
}

// LoadForm formu ID ile getirir.
func (s *FormService) LoadForm(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err)
	}
	return form, nil
}

// CountResponses bir formun yanıt sayısını döndürür.
func (s *FormService) CountResponses(ctx context.Context, formID string) (int64, error) {
	n, err := s.submissions.CountByFormID(ctx, formID)
	if err != nil {
		return 0, wrapRepoError(err)
	}
	return n, nil
}

var _ IFormService = (*FormService)(nil)
