package main

import (
	"fmt"
	"os"

	"finance-backoffice/config"
	"finance-backoffice/internal/database"
	"finance-backoffice/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
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

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := database.SeedAll(db, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}
