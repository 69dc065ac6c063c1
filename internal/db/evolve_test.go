package db

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/carkeep/car-registry/internal/models"
)

func setupEvolveTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Car{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestEvolveBackfillsDateAdded(t *testing.T) {
	db := setupEvolveTest(t)

	owner := models.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "x"}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("owner: %v", err)
	}
	// Rows carried over from the old store have no date_added.
	legacy := models.Car{Make: "Honda", Model: "Civic", UserID: owner.ID}
	dated := models.Car{Make: "Ford", Model: "Focus", UserID: owner.ID, DateAdded: "2020-05-01"}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("legacy car: %v", err)
	}
	if err := db.Create(&dated).Error; err != nil {
		t.Fatalf("dated car: %v", err)
	}

	if err := Evolve(db); err != nil {
		t.Fatalf("evolve: %v", err)
	}

	var got models.Car
	if err := db.First(&got, legacy.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if today := time.Now().Format("2006-01-02"); got.DateAdded != today {
		t.Fatalf("backfill %q, want %q", got.DateAdded, today)
	}

	// Rows that already carry a date keep it.
	got = models.Car{}
	if err := db.First(&got, dated.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.DateAdded != "2020-05-01" {
		t.Fatalf("existing date overwritten: %q", got.DateAdded)
	}
}

func TestEvolveIsIdempotent(t *testing.T) {
	db := setupEvolveTest(t)

	for i := 0; i < 2; i++ {
		if err := Evolve(db); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}
