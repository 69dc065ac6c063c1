// promote-admin flags an existing user as admin by email. Operational
// tool; the API itself never grants admin after registration.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carkeep/car-registry/internal/config"
	dbpkg "github.com/carkeep/car-registry/internal/db"
	"github.com/carkeep/car-registry/internal/models"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: promote-admin <email>")
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	res := db.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true)
	if res.Error != nil {
		log.Fatalf("failed to promote %s: %v", email, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Fatalf("no user with email %s", email)
	}

	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		log.Fatalf("failed to list users: %v", err)
	}
	for _, u := range users {
		fmt.Printf("%d\t%s\t%s\tadmin=%v\n", u.ID, u.Name, u.Email, u.IsAdmin)
	}
}
