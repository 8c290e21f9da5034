package database

import (
	"log"
	"os"
	"time"

	"ot-grc/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init — postgres с повторными попытками (контейнер БД может подниматься дольше)
func Init(dsn string) *gorm.DB {
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

	setup()
	return DB
}

// InitSQLite — локальный однофайловый режим
func InitSQLite(path string) *gorm.DB {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open sqlite %s: %v", path, err)
	}
	log.Printf("using sqlite database %s", path)

	setup()
	return DB
}

func setup() {
	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// создаём дефолтного админа и пару тестовых пользователей
	createDefaultAdmin()
	seedDefaultUsers()
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuditLog{},
		&models.KVEntry{},
	)
}

// админ только из кода/конфига
func createDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin@ot-grc.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		// админ уже есть — ничего не делаем
		return
	}

	if _, err := CreateUser(username, password, "Administrator", models.RoleAdmin); err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", username)
}

// тестовые аккаунты для демо: инженер по ИБ АСУ ТП и аудитор
func seedDefaultUsers() {
	type seedUser struct {
		Username string
		Password string
		Title    string
		Role     models.UserRole
	}

	users := []seedUser{
		{
			Username: "eng@ot-grc.local",
			Password: "Eng123!",
			Title:    "OT Security Engineer",
			Role:     models.RoleEngineer,
		},
		{
			Username: "auditor@ot-grc.local",
			Password: "Audit123!",
			Title:    "Compliance Auditor",
			Role:     models.RoleAuditor,
		},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", u.Username, err)
			continue
		}
		if count > 0 {
			// уже есть — пропускаем
			continue
		}

		if _, err := CreateUser(u.Username, u.Password, u.Title, u.Role); err != nil {
			log.Printf("failed to create seed user %s: %v", u.Username, err)
			continue
		}

		log.Printf("created seed user: %s (role=%s)", u.Username, u.Role)
	}
}

func CreateUser(username, password, title string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Title:        title,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
