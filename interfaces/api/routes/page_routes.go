package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktracker/interfaces/api/handlers"
)

// SetupPageRoutes UI routes: ทุก mutation redirect กลับ "/"
func SetupPageRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/", h.TaskPageHandler.Index)
	app.Post("/add", h.TaskPageHandler.AddTask)
	app.Get("/toggle/:id", h.TaskPageHandler.ToggleTask)
	app.Get("/edit/:id", h.TaskPageHandler.EditForm)
	app.Post("/edit/:id", h.TaskPageHandler.EditTask)
	app.Get("/delete/:id", h.TaskPageHandler.DeleteTask)
}
