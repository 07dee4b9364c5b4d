package configs

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	// CSRFContextKey token'ın c.Locals içindeki anahtarı.
	CSRFContextKey = "csrf"
	// CSRFFormField formlarda token'ı taşıyan gizli alan.
	CSRFFormField = "csrf_token"
	// CSRFCookieName token çerezi.
	CSRFCookieName = "formkit_csrf"
)

// SetupCSRF durum değiştiren isteklerde formdaki token'ı çerezle karşılaştıran middleware'i oluşturur.
func SetupCSRF() fiber.Handler {
	cfg := GetConfig()
	return csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFFormField,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		CookieSecure:   cfg.IsProduction(),
		CookieHTTPOnly: true,
		Expiration:     2 * time.Hour,
		ContextKey:     CSRFContextKey,
	})
}
