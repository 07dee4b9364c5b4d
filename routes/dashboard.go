package routes

import (
	handlers "formkit.link/handlers/dashboard"
	"formkit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar. Giriş yapmış her yazar erişebilir.
func registerDashboardRoutes(app *fiber.App) {
	formHandler := handlers.NewDashboardFormHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(middlewares.AuthMiddleware)

	dashboardGroup.Get("/", formHandler.Home)                                 // GET /dashboard
	dashboardGroup.Get("/forms/:id", formHandler.ShowForm)                    // GET /dashboard/forms/{id}
	dashboardGroup.Get("/forms/:id/responses/:rid", formHandler.ShowResponse) // GET /dashboard/forms/{id}/responses/{rid}
}
