package routes

import (
	auth_handlers "formkit.link/handlers/auth"
	"formkit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()
	authGroup := app.Group("/auth")

	// Group.Use önek üzerinden tüm /auth rotalarına uygulanır; guest kontrolü rota bazında verilir.
	guest := middlewares.GuestMiddleware
	authGroup.Get("/login", guest, authHandler.ShowLogin)
	authGroup.Post("/login", guest, authHandler.Login)
	authGroup.Get("/register", guest, authHandler.ShowRegister)
	authGroup.Post("/register", guest, authHandler.Register)

	authGroup.Post("/logout", authHandler.Logout)
}
