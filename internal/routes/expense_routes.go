package routes

import (
	"finance-backoffice/internal/handler"
	"finance-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupExpenseRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	svc := service.NewExpenseService(db, log)
	hdl := handler.NewExpenseHandler(svc, log)

	api := app.Group("/api/expense")

	api.Get("/detail", hdl.GetDetails) // ?groupId=<id|"null">
	api.Post("/detail", hdl.CreateDetail)
	api.Post("/detail/bulk-delete", hdl.BulkDeleteDetails)
	api.Patch("/detail/:id", hdl.UpdateDetail)
	api.Delete("/detail/:id", hdl.DeleteDetail)

	api.Get("/group", hdl.GetGroups)
	api.Post("/group", hdl.CreateGroup)
	api.Post("/group/bulk-submit", hdl.BulkSubmit)
	api.Get("/group/:id", hdl.GetGroup)
	api.Put("/group/:id", hdl.UpdateGroup)
}
