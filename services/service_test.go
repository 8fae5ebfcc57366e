package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"roomify-backend/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema. The
// service layer keeps its SQL portable, so the same queries run under MySQL
// in production and SQLite here.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting raw database handle: %v", err)
	}
	// Keep every session on one connection so the in-memory DB is shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Location{},
		&models.Admin{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("migrating test schema: %v", err)
	}
	return db
}

func seedLocation(t *testing.T, db *gorm.DB, postalCode, city, area string) models.Location {
	t.Helper()
	loc := models.Location{PostalCode: postalCode, City: city, Area: area}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seeding location: %v", err)
	}
	return loc
}

func seedRoom(t *testing.T, db *gorm.DB, price int64, postalCode string) models.Room {
	t.Helper()
	room := models.Room{
		Price:       decimal.NewFromInt(price),
		Description: "Test room",
		AdminID:     1,
	}
	if postalCode != "" {
		room.PostalCode = &postalCode
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seeding room: %v", err)
	}
	return room
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Phone:    "01700000000",
		Password: "unused",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedAdmin(t *testing.T, db *gorm.DB, email, password string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing admin password: %v", err)
	}
	admin := models.Admin{
		Name:     "Test Admin",
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	return admin
}

func mustCreateBooking(t *testing.T, svc *BookingService, userID, roomID uint, checkIn, checkOut string) *models.Booking {
	t.Helper()
	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:   userID,
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		t.Fatalf("creating booking [%s, %s): %v", checkIn, checkOut, err)
	}
	return booking
}
