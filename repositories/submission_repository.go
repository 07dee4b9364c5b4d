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

// ISubmissionRepository yanıt kayıtları için arayüz. Kayıtlar oluşturulduktan sonra değişmez.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	FindByFormID(ctx context.Context, formID string) ([]models.Submission, error)
	CountByFormID(ctx context.Context, formID string) (int64, error)
	CountByFormIDs(ctx context.Context, formIDs []string) (map[string]int64, error)
}

// SubmissionRepository ISubmissionRepository arayüzünü uygular.
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository paylaşılan bağlantıyla bir SubmissionRepository oluşturur.
func NewSubmissionRepository() ISubmissionRepository {
	return &SubmissionRepository{db: configsdatabase.GetDB()}
}

// NewSubmissionRepositoryWithDB verilen bağlantıyla bir SubmissionRepository oluşturur.
func NewSubmissionRepositoryWithDB(db *gorm.DB) ISubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission == nil || submission.FormID == "" {
		return errors.New("form ID'si olmayan yanıt kaydedilemez")
	}
	return dbFor(ctx, r.db).Create(submission).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var submission models.Submission
	if err := dbFor(ctx, r.db).First(&submission, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("SubmissionRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		}
		return nil, translate(err)
	}
	return &submission, nil
}

// FindByFormID bir forma ait tüm yanıtları döndürür; yanıt yoksa boş dilim döner.
func (r *SubmissionRepository) FindByFormID(ctx context.Context, formID string) ([]models.Submission, error) {
	submissions := []models.Submission{}
	err := dbFor(ctx, r.db).Where("form_id = ?", formID).Order("submitted_at asc").Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindByFormID: DB error", zap.String("formID", formID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

func (r *SubmissionRepository) CountByFormID(ctx context.Context, formID string) (int64, error) {
	var count int64
	err := dbFor(ctx, r.db).Model(&models.Submission{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}

// CountByFormIDs birden fazla formun yanıt sayısını tek sorguda döndürür.
func (r *SubmissionRepository) CountByFormIDs(ctx context.Context, formIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(formIDs))
	if len(formIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		FormID string
		Total  int64
	}
	err := dbFor(ctx, r.db).Model(&models.Submission{}).
		Select("form_id, count(*) as total").
		Where("form_id IN ?", formIDs).
		Group("form_id").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.CountByFormIDs: DB error", zap.Int("formCount", len(formIDs)), zap.Error(err))
		return nil, err
	}
	for _, row := range rows {
		counts[row.FormID] = row.Total
	}
	return counts, nil
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
