package main

import (
	"log"
	"os"
	"strings"

	"cairocms/models"
	"cairocms/pkg/catalog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB
var store *catalog.Store

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Ensure the roles master table exists first and seed it so users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others.
		// Referenced tables go first so FKs can be applied.
		for _, m := range []any{
			&models.User{},
			&models.RefreshToken{},
			&models.Photo{},
			&models.Place{},
			&models.Person{},
			&models.Event{},
			&models.PersonPlace{},
			&models.EventPerson{},
			&models.PlacePhoto{},
			&models.EventPhoto{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				log.Printf("migration warning (%T): %v", m, err)
			}
		}
	}
	store = catalog.New(db, mediaBaseDir())
	seedDB()
}

func seedRoles() {
	roles := []models.Role{
		{Name: "administrator", Description: "full console access"},
		{Name: "editor", Description: "content console access"},
	}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
	ensureMediaBase()
}

// ensureMediaBase creates the base media directory.
func ensureMediaBase() {
	base := mediaBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create media base dir %s: %v", base, err)
	}
}

// mediaBaseDir returns the filesystem root for stored images (configurable via MEDIA_BASE env)
func mediaBaseDir() string {
	if v := os.Getenv("MEDIA_BASE"); v != "" {
		return v
	}
	return "media"
}

// mediaURLPrefix returns the public prefix photo refs are served under.
func mediaURLPrefix() string {
	if v := os.Getenv("MEDIA_URL"); v != "" {
		return strings.TrimSuffix(v, "/") + "/"
	}
	return "/media/"
}
