package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roomify-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}

var activeStatuses = []string{models.StatusPending, models.StatusConfirmed}

// AvailabilityService answers whether a room can be booked for a date range
// and what that range costs. It never mutates anything.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// conflictCount counts active bookings for the room whose range overlaps
// [checkIn, checkOut]. The boundary comparison is deliberately inclusive:
// a booking ending exactly on the requested check-in day still conflicts.
// It runs against whatever handle it is given, so CreateBooking can reuse
// it inside its transaction.
func conflictCount(db *gorm.DB, roomID uint, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := db.Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, activeStatuses).
		Where(
			db.Where("check_in_date <= ? AND check_out_date >= ?", checkIn, checkIn).
				Or("check_in_date <= ? AND check_out_date >= ?", checkOut, checkOut).
				Or("check_in_date >= ? AND check_out_date <= ?", checkIn, checkOut),
		).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("%w: counting booking conflicts: %v", ErrPersistence, err)
	}
	return n, nil
}

// IsAvailable reports whether the room has no active booking overlapping the
// requested range. Read-only; it does not validate that the range is ordered.
func (s *AvailabilityService) IsAvailable(ctx context.Context, roomID uint, checkIn, checkOut string) (bool, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return false, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return false, err
	}

	n, err := conflictCount(s.DB.WithContext(ctx), roomID, in, out)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// ComputeCost returns the total cost and number of nights for a stay.
// Nights is the whole-day difference between the dates; it may be zero or
// negative for malformed ranges, callers enforce checkOut > checkIn upstream.
func ComputeCost(pricePerNight decimal.Decimal, checkIn, checkOut string) (decimal.Decimal, int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return decimal.Zero, 0, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return decimal.Zero, 0, err
	}

	nights := int(out.Sub(in).Hours() / 24)
	total := pricePerNight.Mul(decimal.NewFromInt(int64(nights)))
	return total, nights, nil
}
