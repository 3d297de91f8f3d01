package v1

import (
	_ "todo-calendar/docs"
	"todo-calendar/internal/api/v1/handlers"
	"todo-calendar/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(app *fiber.App) {
	// Dokumentasi OpenAPI, UI di /swagger/index.html
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/v1")

	// Auth
	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Post("/refresh-token", handlers.RefreshToken)
	api.Post("/verify-token", handlers.VerifyToken)

	// Task, statuses harus terdaftar sebelum /:id
	taskRoutes := api.Group("/task", middleware.UseToken)
	taskRoutes.Get("/statuses", handlers.TaskStatuses)
	taskRoutes.Get("/", handlers.ListTasks)
	taskRoutes.Post("/", handlers.CreateTask)
	taskRoutes.Get("/:id", handlers.GetTask)
	taskRoutes.Put("/:id", handlers.ReplaceTask)
	taskRoutes.Patch("/:id", handlers.PatchTask)
	taskRoutes.Delete("/:id", handlers.DeleteTask)

	// WebSocket event task
	api.Get("/ws/tasks", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}, middleware.UseQueryToken, websocket.New(handlers.TaskEvents))
}
