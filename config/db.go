package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"roomify-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "roomify")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, migrates the schema and seeds
// reference data.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// Parent tables before children.
	if err := DB.AutoMigrate(
		&models.Location{},
		&models.Admin{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures the default admin account and the location reference
// table exist. Admins have no self-registration path, so seeding is the only
// way one comes into existence.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				Name:     "Roomify Admin",
				Email:    "admin@roomify.com",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var locationCount int64
	DB.Model(&models.Location{}).Count(&locationCount)
	if locationCount == 0 {
		locations := []models.Location{
			{PostalCode: "1212", City: "Dhaka", Area: "Gulshan"},
			{PostalCode: "1209", City: "Dhaka", Area: "Dhanmondi"},
			{PostalCode: "1213", City: "Dhaka", Area: "Banani"},
			{PostalCode: "1230", City: "Dhaka", Area: "Uttara"},
			{PostalCode: "1205", City: "Dhaka", Area: "Elephant Road"},
			{PostalCode: "1216", City: "Dhaka", Area: "Mirpur"},
			{PostalCode: "4000", City: "Chittagong", Area: "Khulshi"},
			{PostalCode: "4100", City: "Chittagong", Area: "Agrabad"},
			{PostalCode: "4203", City: "Chittagong", Area: "Nasirabad"},
			{PostalCode: "3100", City: "Sylhet", Area: "Zindabazar"},
			{PostalCode: "3101", City: "Sylhet", Area: "Amberkhana"},
			{PostalCode: "2700", City: "Cox's Bazar", Area: "Kolatoli"},
			{PostalCode: "2702", City: "Cox's Bazar", Area: "Sugandha Beach"},
			{PostalCode: "6000", City: "Rajshahi", Area: "Kazla"},
			{PostalCode: "9000", City: "Khulna", Area: "Sonadanga"},
		}
		if err := DB.Create(&locations).Error; err != nil {
			log.Printf("warning: failed to seed locations: %v", err)
		} else {
			log.Printf("Seeded %d locations", len(locations))
		}
	}
}
