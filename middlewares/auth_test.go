package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"formkit.link/configs"
	"formkit.link/models"
	"formkit.link/pkg/authtoken"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func newProtectedApp() *fiber.App {
	configs.SetConfig(&configs.AppConfig{Env: "test", JWTSecret: testSecret, SessionTTL: time.Hour})
	app := fiber.New()
	app.Get("/private", AuthMiddleware, func(c *fiber.Ctx) error {
		ctxUser, _ := models.UserIDFromContext(c.UserContext())
		return c.SendString(UserID(c) + "|" + c.Locals("userName").(string) + "|" + ctxUser)
	})
	app.Get("/guest", GuestMiddleware, func(c *fiber.Ctx) error {
		return c.SendString("guest")
	})
	return app
}

func requestWithToken(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionTokenCookie, Value: token})
	}
	return req
}

func TestAuthMiddleware_RedirectsWithoutSession(t *testing.T) {
	app := newProtectedApp()

	for _, token := range []string{"", "not-a-jwt"} {
		resp, err := app.Test(requestWithToken("/private", token))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
	}
}

func TestAuthMiddleware_PopulatesIdentity(t *testing.T) {
	app := newProtectedApp()
	token, _, err := authtoken.Generate(testSecret, "u-1", "ada@example.com", "Ada", time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(requestWithToken("/private", token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "u-1|Ada|u-1", string(body))
}

func TestAuthMiddleware_RejectsForeignSecret(t *testing.T) {
	app := newProtectedApp()
	token, _, err := authtoken.Generate("other-secret", "u-1", "ada@example.com", "Ada", time.Hour)
	require.NoError(t, err)

	resp, err := app.Test(requestWithToken("/private", token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestGuestMiddleware(t *testing.T) {
	app := newProtectedApp()

	resp, err := app.Test(requestWithToken("/guest", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, _, err := authtoken.Generate(testSecret, "u-1", "ada@example.com", "Ada", time.Hour)
	require.NoError(t, err)
	resp, err = app.Test(requestWithToken("/guest", token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get(fiber.HeaderLocation))
}
