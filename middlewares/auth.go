package middlewares

import (
	"time"

	"formkit.link/configs"
	"formkit.link/models"
	"formkit.link/pkg/authtoken"

	"github.com/gofiber/fiber/v2"
)

// SessionTokenCookie oturum JWT'sini taşıyan çerez.
const SessionTokenCookie = "formkit_session"

// SetSessionCookie oturum çerezini yazar.
func SetSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   configs.GetConfig().IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie oturum çerezini siler.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// currentClaims çerezdeki token geçerliyse içeriğini döndürür.
func currentClaims(c *fiber.Ctx) (*authtoken.Claims, bool) {
	token := c.Cookies(SessionTokenCookie)
	if token == "" {
		return nil, false
	}
	claims, err := authtoken.Validate(configs.GetConfig().JWTSecret, token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// AuthMiddleware geçerli bir oturum ister; yoksa giriş sayfasına yönlendirir.
// Kullanıcı bilgileri c.Locals ve istek context'ine yazılır.
func AuthMiddleware(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		ClearSessionCookie(c)
		return c.Redirect("/auth/login", fiber.StatusFound)
	}
	c.Locals("userID", claims.UserID)
	c.Locals("userEmail", claims.Email)
	c.Locals("userName", claims.Name)
	c.SetUserContext(models.ContextWithUserID(c.UserContext(), claims.UserID))
	return c.Next()
}

// GuestMiddleware oturum açmış kullanıcıları panoya gönderir.
func GuestMiddleware(c *fiber.Ctx) error {
	if _, ok := currentClaims(c); ok {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Next()
}

// IsAuthenticated çerezde geçerli bir oturum olup olmadığını bildirir.
func IsAuthenticated(c *fiber.Ctx) bool {
	_, ok := currentClaims(c)
	return ok
}

// UserID AuthMiddleware'in yazdığı kullanıcı ID'si.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
