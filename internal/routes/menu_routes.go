package routes

import (
	"finance-backoffice/internal/handler"
	"finance-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupMenuRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	svc := service.NewMenuService(db, log)
	hdl := handler.NewMenuHandler(svc, log)

	api := app.Group("/api/menu")

	api.Get("/", hdl.GetMenus)
	api.Get("/tree", hdl.GetTree) // ?type=X
	api.Post("/", hdl.CreateMenu)
	api.Put("/:id", hdl.UpdateMenu)
	api.Delete("/:id", hdl.DeleteMenu)
}
