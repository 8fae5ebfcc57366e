package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roomify-backend/metrics"
	"roomify-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle: creation (with its payment row)
// and admin-driven status transitions.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	UserID   uint
	RoomID   uint
	CheckIn  string
	CheckOut string
}

func newReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + raw[:10]
}

// CreateBooking validates the range, then re-checks availability and writes
// the Booking plus its Payment inside a single serializable transaction, so
// two concurrent requests for overlapping ranges cannot both succeed and a
// failed payment insert never leaves an orphaned booking behind.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	checkIn, err := ParseDate(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate(in.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	}

	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", ErrNotFound, in.RoomID)
		}
		return nil, fmt.Errorf("%w: loading room %d: %v", ErrPersistence, in.RoomID, err)
	}

	total, _, err := ComputeCost(room.Price, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := conflictCount(tx, in.RoomID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: room %d is not available from %s to %s", ErrConflict, in.RoomID, in.CheckIn, in.CheckOut)
		}

		booking = models.Booking{
			UserID:        in.UserID,
			RoomID:        in.RoomID,
			ReferenceCode: newReferenceCode(),
			CheckInDate:   datatypes.Date(checkIn),
			CheckOutDate:  datatypes.Date(checkOut),
			TotalCost:     total,
			Status:        models.StatusPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("%w: creating booking: %v", ErrPersistence, err)
		}

		payment := models.Payment{
			Amount:    total,
			BookingID: booking.ID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("%w: creating payment: %v", ErrPersistence, err)
		}
		booking.Payment = &payment
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if txErr != nil {
		if errors.Is(txErr, ErrConflict) {
			metrics.ObserveBooking("conflict")
		} else {
			metrics.ObserveBooking("error")
		}
		return nil, txErr
	}

	metrics.ObserveBooking("created")
	return &booking, nil
}

// UpdateStatus moves a booking along the enforced lifecycle graph. Unknown
// statuses and illegal transitions are rejected; Cancelled and Completed are
// terminal.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uint, newStatus string) (*models.Booking, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrValidation, newStatus)
	}

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return fmt.Errorf("%w: loading booking %d: %v", ErrPersistence, bookingID, err)
		}
		if !models.CanTransition(booking.Status, newStatus) {
			return fmt.Errorf("%w: cannot change booking status from %s to %s", ErrValidation, booking.Status, newStatus)
		}
		if err := tx.Model(&booking).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("%w: updating booking %d: %v", ErrPersistence, bookingID, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	metrics.ObserveStatusChange(newStatus)
	return &booking, nil
}

// ListBookingsForUser returns the user's bookings with room, location and
// payment attached, most recent check-in first.
func (s *BookingService) ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Room.Location").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("check_in_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing bookings for user %d: %v", ErrPersistence, userID, err)
	}
	return bookings, nil
}

// ListAllBookings is the admin projection: every booking with its user, room,
// location and payment, most recent check-in first.
func (s *BookingService) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Room.Location").
		Preload("Payment").
		Order("check_in_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing bookings: %v", ErrPersistence, err)
	}
	return bookings, nil
}

// GetBookingDetails loads one booking with all its relations.
func (s *BookingService) GetBookingDetails(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Room.Location").
		Preload("Payment").
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
		}
		return nil, fmt.Errorf("%w: loading booking %d: %v", ErrPersistence, bookingID, err)
	}
	return &booking, nil
}
