package database

import (
	"log"
	"os"
	"time"

	"obras-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrar(); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	crearAdminPorDefecto()
}

// Migrar aplica las migraciones sobre la conexión global.
func Migrar() error {
	return DB.AutoMigrate(
		&models.Usuario{},
		&models.Obra{},
		&models.Actividad{},
		&models.Contrato{},
		&models.Inspeccion{},
		&models.Inversion{},
		&models.Bitacora{},
	)
}

// cuenta administradora solo desde código/configuración
func crearAdminPorDefecto() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin@obras.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.Usuario{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		// ya existe, nada que hacer
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.Usuario{
		Username:     username,
		PasswordHash: string(hash),
		Rol:          "admin",
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", username)
}
