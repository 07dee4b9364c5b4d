package handlers

import (
	"errors"
	"net/http"

	"formkit.link/configs/configslog"
	"formkit.link/middlewares"
	"formkit.link/pkg/flashmessages"
	"formkit.link/pkg/renderer"
	"formkit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş, kayıt ve çıkış sayfaları.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{service: services.NewAuthService()}
}

// NewAuthHandlerWith servisi dışarıdan alır.
func NewAuthHandlerWith(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":    "Giriş Yap",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/login", "layouts/auth_layout", data, http.StatusOK)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	session, err := h.service.Login(c.UserContext(), email, password)
	if err != nil {
		// Düz ErrAuth yanlış kimlik bilgisidir; sarılmış hata altyapı sorunudur.
		if err != services.ErrAuth {
			configslog.Log.Error("Login error", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "E-posta veya şifre hatalı.")
		_ = flashmessages.SetFlashFormData(c, map[string]string{"email": email})
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	middlewares.SetSessionCookie(c, session.Token, session.ExpiresAt)
	configslog.SLog.Infof("Kullanıcı giriş yaptı: %s", session.Email)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":    "Kayıt Ol",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/register", "layouts/auth_layout", data, http.StatusOK)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	session, err := h.service.Register(c.UserContext(), name, email, password)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			msg = "Bu e-posta adresiyle zaten bir hesap var."
		case errors.Is(err, services.ErrInvalidInput):
			msg = "Lütfen adınızı, geçerli bir e-posta ve en az 6 karakterlik bir şifre girin."
		default:
			configslog.Log.Error("Register error", zap.String("email", email), zap.Error(err))
			msg = "Kayıt sırasında bir hata oluştu."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		_ = flashmessages.SetFlashFormData(c, map[string]string{"name": name, "email": email})
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	middlewares.SetSessionCookie(c, session.Token, session.ExpiresAt)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Hoş geldiniz! Hesabınız oluşturuldu.")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middlewares.ClearSessionCookie(c)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Çıkış yaptınız.")
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}
