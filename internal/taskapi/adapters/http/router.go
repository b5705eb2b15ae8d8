// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"taskhive/internal/taskapi/adapters/http/middleware"
	"taskhive/internal/taskapi/adapters/http/tasks"
	"taskhive/internal/taskapi/adapters/http/users"
	"taskhive/internal/taskapi/app/dto"
	"taskhive/internal/taskapi/config"
	"taskhive/internal/taskapi/ports/api"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// Маршруты повторяют исторический публичный контракт сервиса,
// поэтому монтируются без префикса версии.
func SetupRouter(
	app *fiber.App,
	userUC api.UserUseCase,
	taskUC api.TaskUseCase,
	sessions api.SessionUseCase,
	avatarCfg config.AvatarConfig,
) {
	userHandler := users.NewHandler(userUC, sessions, avatarCfg)
	taskHandler := tasks.NewHandler(taskUC)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	authRequired := middleware.NewAuthMiddleware(sessions)

	// Публичные маршруты.
	app.Post("/users", userHandler.Register)
	app.Post("/users/login", userHandler.Login)
	app.Get("/users/:id/avatar", userHandler.FetchAvatar)

	// Маршруты учетной записи (требуют авторизации).
	userRoutes := app.Group("/users", authRequired)
	userRoutes.Post("/logout", userHandler.Logout)
	userRoutes.Post("/logoutall", userHandler.LogoutAll)
	userRoutes.Get("/me", userHandler.GetProfile)
	userRoutes.Patch("/me", userHandler.UpdateProfile)
	userRoutes.Delete("/me", userHandler.DeleteProfile)
	userRoutes.Post("/me/avatar", userHandler.UploadAvatar)
	userRoutes.Delete("/me/avatar", userHandler.DeleteAvatar)

	// Маршруты задач (требуют авторизации).
	taskRoutes := app.Group("/tasks", authRequired)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Patch("/:id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:id", taskHandler.DeleteTask)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Route not found"))
	})
}
