package routes

import (
	"errors"
	"strings"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/middlewares"
	"formkit.link/pkg/flashmessages"
	"formkit.link/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

// NewApp görünüm motoru ve hata işleyicisi ayarlanmış bir fiber uygulaması oluşturur ve rotaları bağlar.
func NewApp(cfg *configs.AppConfig) *fiber.App {
	engine := html.NewFileSystem(views.FileSystem(), ".html")
	engine.AddFunc("join", strings.Join)

	bodyLimit := 4 * 1024 * 1024
	if cfg.UploadMaxBytes > 0 {
		// Birden fazla dosya alanı tek istekte gelebilir.
		bodyLimit = cfg.UploadMaxBytes * 4
	}

	app := fiber.New(fiber.Config{
		AppName:      "formkit.link",
		Views:        engine,
		BodyLimit:    bodyLimit,
		UnescapePath: true,
		ErrorHandler: errorHandler,
	})
	SetupRoutes(app)
	return app
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	if !configs.GetConfig().IsProduction() {
		app.Use(logger.New())
	}
	app.Use(initializeSession())
	app.Use(configs.SetupCSRF())

	registerAuthRoutes(app)
	registerDashboardRoutes(app)
	registerPanelRoutes(app)
	registerPublicLinkRoutes(app)

	app.Get("/", rootRedirector)
	app.Use(notFoundHandler)
}

// initializeSession flash mesajları için session store'unu her isteğe ekler.
func initializeSession() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals(flashmessages.StoreLocalsKey, sessionStore)
		return c.Next()
	}
}

func rootRedirector(c *fiber.Ctx) error {
	if middlewares.IsAuthenticated(c) {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

func notFoundHandler(c *fiber.Ctx) error {
	switch c.Accepts("application/json", "text/html") {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
}

// errorHandler handler'lardan dönen hataları hata sayfasına çevirir; süreç çalışmaya devam eder.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("İstek işlenemedi", zap.String("path", c.Path()), zap.Error(err))
	}
	if code == fiber.StatusForbidden {
		return c.Status(code).Render("errors/500", fiber.Map{
			"Title":   "Geçersiz İstek",
			"Message": "Güvenlik doğrulaması başarısız oldu. Sayfayı yenileyip tekrar deneyin.",
		}, "layouts/error_layout")
	}
	if code == fiber.StatusNotFound {
		return c.Status(code).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/error_layout")
	}
	if renderErr := c.Status(code).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": "Beklenmeyen bir hata oluştu.",
	}, "layouts/error_layout"); renderErr != nil {
		return c.Status(code).SendString("Beklenmeyen bir hata oluştu.")
	}
	return nil
}
