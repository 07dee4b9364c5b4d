package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/models"
	"formkit.link/pkg/authtoken"
	"formkit.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Session giriş yapmış bir kullanıcının oturumu.
type Session struct {
	Token     string
	UserID    string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// IAuthService oturum açma ve kayıt işlemleri için arayüz.
type IAuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, name, email, password string) (*Session, error)
	ValidateSession(token string) (*authtoken.Claims, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	users  repositories.IUserRepository
	secret string
	ttl    time.Duration
}

// NewAuthService paylaşılan bağlantı ve ayarlarla bir AuthService oluşturur.
func NewAuthService() IAuthService {
	cfg := configs.GetConfig()
	return NewAuthServiceWith(repositories.NewUserRepository(), cfg.JWTSecret, cfg.SessionTTL)
}

// NewAuthServiceWith bağımlılıkları dışarıdan alır.
func NewAuthServiceWith(users repositories.IUserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// Login e-posta ve şifreyi doğrular. Bilinmeyen e-posta, yanlış şifre ve pasif hesap aynı hatayı verir.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrAuth
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuth
		}
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if !user.Status {
		configslog.SLog.Warnf("Pasif hesapla giriş denemesi: %s", user.Email)
		return nil, ErrAuth
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuth
	}
	return s.issue(user)
}

// Register yeni bir yazar hesabı oluşturur ve oturum açar.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = repositories.NormalizeEmail(email)
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: ad ve geçerli bir e-posta gerekli", ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: şifre en az 6 karakter olmalı", ErrInvalidInput)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: string(hash), Status: true}
	if err := s.users.Create(ctx, user); err != nil {
		configslog.Log.Error("Kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	configslog.SLog.Infof("Yeni kullanıcı kaydı: %s (ID: %s)", email, user.ID)
	return s.issue(user)
}

// ValidateSession token'ı doğrular.
func (s *AuthService) ValidateSession(token string) (*authtoken.Claims, error) {
	claims, err := authtoken.Validate(s.secret, token)
	if err != nil {
		return nil, ErrAuth
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, expiresAt, err := authtoken.Generate(s.secret, user.ID, user.Email, user.Name, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return &Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: expiresAt,
	}, nil
}

var _ IAuthService = (*AuthService)(nil)
