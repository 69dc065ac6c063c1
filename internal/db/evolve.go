package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/models"
)

// Evolve applies the schema additions that arrived after the store was
// first deployed. Stores created by AutoMigrate already have every
// column; stores carried over from older deployments are missing the
// late ones and hold cars with no date_added. Runs once at startup,
// outside the request-handling path.
func Evolve(db *gorm.DB) error {
	migrator := db.Migrator()

	lateColumns := []struct {
		model  any
		column string
	}{
		{&models.Car{}, "date_added"},
		{&models.Car{}, "proj_pickup_date"},
		{&models.User{}, "phone_number"},
	}

	for _, lc := range lateColumns {
		if !migrator.HasColumn(lc.model, lc.column) {
			if err := migrator.AddColumn(lc.model, lc.column); err != nil {
				return err
			}
		}
	}

	today := time.Now().Format("2006-01-02")
	return db.Model(&models.Car{}).
		Where("date_added IS NULL OR date_added = ''").
		Update("date_added", today).Error
}
