package routes

import (
	"finance-backoffice/internal/handler"
	"finance-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupMasterRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	repo := repository.NewMasterRepository(db)
	hdl := handler.NewMasterHandler(repo, log)

	api := app.Group("/api/master")

	api.Get("/account", hdl.GetAccounts)
	api.Post("/account", hdl.CreateAccount)
	api.Get("/cost-center", hdl.GetCostCenters)
	api.Post("/cost-center", hdl.CreateCostCenter)
	api.Get("/fund-center", hdl.GetFundCenters)
	api.Post("/fund-center", hdl.CreateFundCenter)
	api.Get("/wbs", hdl.GetWBS)
	api.Post("/wbs", hdl.CreateWBS)
}
