package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionCookieName flash mesajları ve kısa ömürlü durum için kullanılan session çerezi.
const SessionCookieName = "formkit_flash"

// SetupSession fiber session store'unu oluşturur.
func SetupSession() *session.Store {
	cfg := GetConfig()
	return session.New(session.Config{
		Expiration:     2 * time.Hour,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: "Lax",
	})
}
