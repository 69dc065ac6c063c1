package db

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/config"
	"github.com/carkeep/car-registry/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(openDialector(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := Evolve(db); err != nil {
		log.Fatalf("failed to evolve schema: %v", err)
	}

	return db
}

// openDialector picks the driver from the URL. Postgres URLs go to the
// postgres driver; anything else is treated as a sqlite path, which is
// what the store migrated from the previous deployment uses.
func openDialector(url string) gorm.Dialector {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return postgres.Open(url)
	}
	return sqlite.Open(url)
}
