package routes

import (
	panel_handlers "formkit.link/handlers/panel"
	"formkit.link/middlewares"
	"formkit.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes form oluşturma akışının rotalarını tanımlar.
func registerPanelRoutes(app *fiber.App) {
	formHandler := panel_handlers.NewPanelFormHandler(services.NewDraftService())

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware)

	panelGroup.Get("/forms/new", formHandler.ShowNewForm)  // GET /panel/forms/new
	panelGroup.Post("/forms/new", formHandler.CreateDraft) // POST /panel/forms/new

	panelGroup.Get("/drafts/:id", formHandler.ShowDraft)                       // GET /panel/drafts/{id}
	panelGroup.Post("/drafts/:id/fields", formHandler.AddField)                // POST /panel/drafts/{id}/fields
	panelGroup.Post("/drafts/:id/fields/:fid/label", formHandler.UpdateField)  // POST /panel/drafts/{id}/fields/{fid}/label
	panelGroup.Post("/drafts/:id/fields/:fid/options", formHandler.AddOption)  // POST /panel/drafts/{id}/fields/{fid}/options
	panelGroup.Post("/drafts/:id/fields/:fid/delete", formHandler.RemoveField) // POST /panel/drafts/{id}/fields/{fid}/delete
	panelGroup.Post("/drafts/:id/publish", formHandler.Publish)                // POST /panel/drafts/{id}/publish
	panelGroup.Post("/drafts/:id/discard", formHandler.Discard)                // POST /panel/drafts/{id}/discard
}
