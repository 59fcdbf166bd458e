package routes

import (
	"finance-backoffice/config"
	"finance-backoffice/internal/handler"
	"finance-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, cfg config.AuthConfig, log *zap.Logger) {
	repo := repository.NewEmployeeRepository(db)
	hdl := handler.NewAuthHandler(repo, cfg, log)

	api := app.Group("/api/auth")

	api.Post("/login", hdl.Login)
}
