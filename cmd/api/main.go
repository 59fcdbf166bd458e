package main

import (
	"fmt"
	"os"

	"finance-backoffice/config"
	"finance-backoffice/internal/logger"
	"finance-backoffice/internal/middleware"
	"finance-backoffice/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; system environment wins when the file is absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting finance back-office server",
		zap.String("driver", cfg.Database.Driver),
		zap.Int("port", cfg.Server.Port))

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	app := fiber.New()

	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.Identity(cfg.Auth.JWTSecret))

	routes.SetupAuthRoutes(app, db, cfg.Auth, log)
	routes.SetupCodeRoutes(app, db, log)
	routes.SetupMenuRoutes(app, db, log)
	routes.SetupExpenseRoutes(app, db, log)
	routes.SetupMasterRoutes(app, db, log)

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
