package repositories

import (
	"context"
	"errors"

	"formkit.link/configs/configsdatabase"
	"formkit.link/configs/configslog"
	"formkit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IFormRepository form veritabanı işlemleri için arayüz.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id string) (*models.Form, error)
	FindAllSummaries(ctx context.Context) ([]models.FormSummary, error)
	FindSummariesByCreator(ctx context.Context, creatorUserID string) ([]models.FormSummary, error)
	Count(ctx context.Context) (int64, error)
}

// FormRepository IFormRepository arayüzünü uygular.
type FormRepository struct {
	db *gorm.DB
}

// NewFormRepository paylaşılan bağlantıyla bir FormRepository oluşturur.
func NewFormRepository() IFormRepository {
	return &FormRepository{db: configsdatabase.GetDB()}
}

// NewFormRepositoryWithDB verilen bağlantıyla (transaction dahil) bir FormRepository oluşturur.
func NewFormRepositoryWithDB(db *gorm.DB) IFormRepository {
	return &FormRepository{db: db}
}

// Create formu tek yazımda oluşturur. ID boşsa BeforeCreate hook'u üretir.
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil || form.CreatorUserID == "" {
		return errors.New("oluşturan kullanıcısı olmayan form kaydedilemez")
	}
	if form.Fields == nil {
		form.Fields = []models.FormField{}
	}
	return dbFor(ctx, r.db).Create(form).Error
}

// FindByID belirli bir ID'ye sahip formu bulur.
func (r *FormRepository) FindByID(ctx context.Context, id string) (*models.Form, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var form models.Form
	if err := dbFor(ctx, r.db).First(&form, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("FormRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		}
		return nil, translate(err)
	}
	if form.Fields == nil {
		form.Fields = []models.FormField{}
	}
	return &form, nil
}

// FindAllSummaries tüm formların ID ve başlığını döndürür. Sıralama garanti edilmez.
func (r *FormRepository) FindAllSummaries(ctx context.Context) ([]models.FormSummary, error) {
	summaries := []models.FormSummary{}
	err := dbFor(ctx, r.db).Model(&models.Form{}).Select("id", "title").Scan(&summaries).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindAllSummaries: DB error", zap.Error(err))
		return nil, err
	}
	return summaries, nil
}

// FindSummariesByCreator bir kullanıcının oluşturduğu formların özetlerini döndürür.
func (r *FormRepository) FindSummariesByCreator(ctx context.Context, creatorUserID string) ([]models.FormSummary, error) {
	summaries := []models.FormSummary{}
	err := dbFor(ctx, r.db).Model(&models.Form{}).
		Select("id", "title").
		Where("creator_user_id = ?", creatorUserID).
		Scan(&summaries).Error
	if err != nil {
		configslog.Log.Error("FormRepository.FindSummariesByCreator: DB error", zap.String("creatorUserID", creatorUserID), zap.Error(err))
		return nil, err
	}
	return summaries, nil
}

// Count toplam form sayısını döndürür.
func (r *FormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFor(ctx, r.db).Model(&models.Form{}).Count(&count).Error
	return count, err
}

var _ IFormRepository = (*FormRepository)(nil)
