package routes

import (
	"finance-backoffice/internal/handler"
	"finance-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupCodeRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	repo := repository.NewCodeRepository(db)
	hdl := handler.NewCodeHandler(repo, log)

	api := app.Group("/api/code")

	api.Get("/master", hdl.GetMasters)
	api.Post("/master", hdl.CreateMaster)
	api.Put("/master/:code", hdl.UpdateMaster)
	api.Delete("/master/:code", hdl.DeleteMaster)

	api.Get("/", hdl.GetCodes) // ?masterCode=X
	api.Post("/", hdl.CreateCode)
	api.Put("/:code", hdl.UpdateCode)
	api.Delete("/:code", hdl.DeleteCode)
}
