package repositories

import (
	"context"
	"errors"
	"strings"

	"formkit.link/configs/configsdatabase"
	"formkit.link/configs/configslog"
	"formkit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository paylaşılan bağlantıyla bir UserRepository oluşturur.
func NewUserRepository() IUserRepository {
	return &UserRepository{db: configsdatabase.GetDB()}
}

// NewUserRepositoryWithDB verilen bağlantıyla bir UserRepository oluşturur.
func NewUserRepositoryWithDB(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

// NormalizeEmail e-posta adreslerini karşılaştırma için tek biçime getirir.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return errors.New("e-postası olmayan kullanıcı oluşturulamaz")
	}
	user.Email = NormalizeEmail(user.Email)
	return dbFor(ctx, r.db).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var user models.User
	if err := dbFor(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("UserRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		}
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrNotFound
	}
	var user models.User
	if err := dbFor(ctx, r.db).Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		}
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := dbFor(ctx, r.db).Model(&models.User{}).Where("email = ?", NormalizeEmail(email)).Count(&count).Error
	return count > 0, err
}

var _ IUserRepository = (*UserRepository)(nil)
