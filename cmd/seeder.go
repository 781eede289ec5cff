package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/restaurant-management/internal/core/events"
	"github.com/frahmantamala/restaurant-management/internal/rolepermission"
	rolepermissionPostgres "github.com/frahmantamala/restaurant-management/internal/rolepermission/postgres"
	"github.com/frahmantamala/restaurant-management/pkg/logger"
)

const demoCompanyName = "Demo Bistro"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed a demo company, one staff account per role, and the default role permissions.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			clearDemoData(db)
		}

		companyID := ensureDemoCompany(db)
		ensureDemoStaff(db, companyID)
		seedRolePermissions(db, companyID)

		fmt.Println("Seeding complete for company:", companyID)
	},
}

func clearDemoData(db *gorm.DB) {
	var companyID string
	row := db.Raw("SELECT id FROM companies WHERE name = ?", demoCompanyName).Row()
	if err := row.Scan(&companyID); err != nil {
		return
	}

	if err := db.Exec("DELETE FROM role_permissions WHERE company_id = ?", companyID).Error; err != nil {
		log.Fatalf("failed to clear role permissions: %v", err)
	}
	if err := db.Exec("DELETE FROM users WHERE company_id = ?", companyID).Error; err != nil {
		log.Fatalf("failed to clear users: %v", err)
	}
	if err := db.Exec("DELETE FROM companies WHERE id = ?", companyID).Error; err != nil {
		log.Fatalf("failed to clear company: %v", err)
	}
	fmt.Println("Cleared existing demo data")
}

func ensureDemoCompany(db *gorm.DB) string {
	var companyID string
	row := db.Raw("SELECT id FROM companies WHERE name = ?", demoCompanyName).Row()
	if err := row.Scan(&companyID); err == nil {
		fmt.Println("demo company already exists:", companyID)
		return companyID
	}

	companyID = uuid.NewString()
	err := db.Exec(
		"INSERT INTO companies (id, name, business_type, currency, timezone, is_active, created_at, updated_at) VALUES (?, ?, 'restaurant', 'USD', 'UTC', true, now(), now())",
		companyID, demoCompanyName,
	).Error
	if err != nil {
		log.Fatalf("failed to insert demo company: %v", err)
	}
	fmt.Println("Seeded demo company:", companyID)
	return companyID
}

func ensureDemoStaff(db *gorm.DB, companyID string) {
	password := "password"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	staff := []struct {
		Email string
		Name  string
		Role  rolepermission.Role
	}{
		{"owner@demo-bistro.test", "Demo Owner", rolepermission.RoleOwner},
		{"manager@demo-bistro.test", "Demo Manager", rolepermission.RoleManager},
		{"chef@demo-bistro.test", "Demo Chef", rolepermission.RoleChef},
		{"waiter@demo-bistro.test", "Demo Waiter", rolepermission.RoleWaiter},
		{"cashier@demo-bistro.test", "Demo Cashier", rolepermission.RoleCashier},
	}

	for _, s := range staff {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", s.Email).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		err := db.Exec(
			"INSERT INTO users (id, company_id, email, name, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
			uuid.NewString(), companyID, s.Email, s.Name, string(hash), s.Role.String(),
		).Error
		if err != nil {
			log.Fatalf("failed to insert %s user: %v", s.Role, err)
		}
		fmt.Printf("Seeded %s account: %s\n", s.Role, s.Email)
	}
}

// seedRolePermissions goes through the service so the seed command exercises
// the same defaulting path the API uses on first read.
func seedRolePermissions(db *gorm.DB, companyID string) {
	lg := logger.LoggerWrapper()
	repo := rolepermissionPostgres.NewRolePermissionRepository(db)
	service := rolepermission.NewService(repo, events.NewEventBus(lg), lg)

	permissions, err := service.GetRolePermissions(companyID)
	if err != nil {
		log.Fatalf("failed to seed role permissions: %v", err)
	}
	fmt.Printf("Role permissions in place for %d roles\n", len(permissions))
}
