package config

import (
	"fmt"

	"finance-backoffice/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDB opens the configured database and runs auto-migration for every
// entity. TranslateError is on so handlers can match gorm.ErrDuplicatedKey
// and gorm.ErrForeignKeyViolated regardless of driver.
func ConnectDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Path + "?_foreign_keys=on")
	default:
		dialector = mysql.Open(cfg.MySQLDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.MasterCode{},
		&model.Code{},
		&model.Menu{},
		&model.Group{},
		&model.CardUsage{},
		&model.Detail{},
		&model.Account{},
		&model.CostCenter{},
		&model.FundCenter{},
		&model.WBS{},
		&model.Employee{},
	)
}
