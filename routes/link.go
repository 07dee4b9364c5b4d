package routes

import (
	handlers "formkit.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes yanıtlayıcıların eriştiği public rotaları tanımlar.
func registerPublicLinkRoutes(app *fiber.App) {
	publicHandler := handlers.NewLinkHandler()

	app.Get("/f/:id", publicHandler.ShowForm)
	app.Post("/f/:id", publicHandler.Submit)
	app.Get("/files/*", publicHandler.ServeFile)
}
