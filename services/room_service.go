package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roomify-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomService covers room CRUD and the room/location read projections.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomInput struct {
	Price       decimal.Decimal
	Description string
	ImageURL    string
	PostalCode  string
}

func (s *RoomService) validateLocation(ctx context.Context, postalCode string) error {
	var loc models.Location
	err := s.DB.WithContext(ctx).First(&loc, "postal_code = ?", postalCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: unknown postal code %s", ErrValidation, postalCode)
	}
	if err != nil {
		return fmt.Errorf("%w: checking location %s: %v", ErrPersistence, postalCode, err)
	}
	return nil
}

// CreateRoom creates a room owned by the given admin.
func (s *RoomService) CreateRoom(ctx context.Context, adminID uint, in RoomInput) (*models.Room, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	room := models.Room{
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		AdminID:     adminID,
	}
	if pc := strings.TrimSpace(in.PostalCode); pc != "" {
		if err := s.validateLocation(ctx, pc); err != nil {
			return nil, err
		}
		room.PostalCode = &pc
	}

	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return nil, fmt.Errorf("%w: creating room: %v", ErrPersistence, err)
	}
	return &room, nil
}

// UpdateRoom overwrites the admin-mutable fields of a room. The owning admin
// never changes.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID uint, in RoomInput) (*models.Room, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return nil, fmt.Errorf("%w: loading room %d: %v", ErrPersistence, roomID, err)
	}

	room.Price = in.Price
	room.Description = in.Description
	room.ImageURL = in.ImageURL
	if pc := strings.TrimSpace(in.PostalCode); pc != "" {
		if err := s.validateLocation(ctx, pc); err != nil {
			return nil, err
		}
		room.PostalCode = &pc
	} else {
		room.PostalCode = nil
	}

	if err := s.DB.WithContext(ctx).Save(&room).Error; err != nil {
		return nil, fmt.Errorf("%w: updating room %d: %v", ErrPersistence, roomID, err)
	}
	return &room, nil
}

// DeleteRoom removes a room, refusing while any booking references it. There
// is no cascade: booking history keeps its room on the books.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uint) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("room_id = ?", roomID).Count(&n).Error; err != nil {
		return fmt.Errorf("%w: counting bookings for room %d: %v", ErrPersistence, roomID, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: room %d has booking history and cannot be deleted", ErrConflict, roomID)
	}

	res := s.DB.WithContext(ctx).Delete(&models.Room{}, roomID)
	if res.Error != nil {
		return fmt.Errorf("%w: deleting room %d: %v", ErrPersistence, roomID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
	}
	return nil
}

// GetRoom loads one room with its location.
func (s *RoomService) GetRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).Preload("Location").First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
		}
		return nil, fmt.Errorf("%w: loading room %d: %v", ErrPersistence, roomID, err)
	}
	return &room, nil
}

// ListRooms returns every room, for the admin management view.
func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Preload("Location").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("%w: listing rooms: %v", ErrPersistence, err)
	}
	return rooms, nil
}

// bookedRoomIDs is the subquery of rooms blocked by an active booking that
// has not yet ended as of the given day.
func (s *RoomService) bookedRoomIDs(ctx context.Context, today time.Time) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&models.Booking{}).
		Distinct("room_id").
		Where("status IN ? AND check_out_date >= ?", activeStatuses, today)
}

// ListAvailableRooms returns rooms without an active current-or-future
// booking.
func (s *RoomService) ListAvailableRooms(ctx context.Context) ([]models.Room, error) {
	today := time.Now().Truncate(24 * time.Hour)

	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Preload("Location").
		Where("id NOT IN (?)", s.bookedRoomIDs(ctx, today)).
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing available rooms: %v", ErrPersistence, err)
	}
	return rooms, nil
}

// SearchRooms filters available rooms by city or area substring.
func (s *RoomService) SearchRooms(ctx context.Context, query string) ([]models.Room, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	today := time.Now().Truncate(24 * time.Hour)

	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Joins("LEFT JOIN locations ON locations.postal_code = rooms.postal_code").
		Where("locations.city LIKE ? OR locations.area LIKE ?", pattern, pattern).
		Where("rooms.id NOT IN (?)", s.bookedRoomIDs(ctx, today)).
		Preload("Location").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("%w: searching rooms: %v", ErrPersistence, err)
	}
	return rooms, nil
}

// ListLocations returns the static location reference data.
func (s *RoomService) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.DB.WithContext(ctx).Order("postal_code").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("%w: listing locations: %v", ErrPersistence, err)
	}
	return locations, nil
}
