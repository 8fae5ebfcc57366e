package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomify-backend/models"

	"github.com/shopspring/decimal"
)

func TestCreateBookingPersistsBookingAndPayment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, 1000, "")
	svc := NewBookingService(db)

	booking := mustCreateBooking(t, svc, user.ID, room.ID, "2024-06-01", "2024-06-05")

	if booking.Status != models.StatusPending {
		t.Errorf("status = %s, want %s", booking.Status, models.StatusPending)
	}
	if !booking.TotalCost.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("total cost = %s, want 4000", booking.TotalCost)
	}
	if booking.ReferenceCode == "" {
		t.Error("expected a reference code")
	}
	if booking.Payment == nil {
		t.Fatal("expected a payment to be created with the booking")
	}
	if !booking.Payment.Amount.Equal(booking.TotalCost) {
		t.Errorf("payment amount = %s, want %s", booking.Payment.Amount, booking.TotalCost)
	}

	listed, err := svc.ListBookingsForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListBookingsForUser failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d bookings, want 1", len(listed))
	}
	got := listed[0]
	if got.ID != booking.ID || got.Status != models.StatusPending {
		t.Errorf("listed booking = (%d, %s), want (%d, %s)", got.ID, got.Status, booking.ID, models.StatusPending)
	}
	if !got.TotalCost.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("listed total cost = %s, want 4000", got.TotalCost)
	}
	if got.Payment == nil || !got.Payment.Amount.Equal(got.TotalCost) {
		t.Error("listed booking must carry its payment with a matching amount")
	}
}

func TestCreateBookingRejectsBadRanges(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, 1000, "")
	svc := NewBookingService(db)

	cases := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"inverted", "2024-06-05", "2024-06-01"},
		{"zero nights", "2024-06-01", "2024-06-01"},
		{"malformed check-in", "someday", "2024-06-05"},
		{"malformed check-out", "2024-06-01", "someday"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
				UserID:   user.ID,
				RoomID:   room.ID,
				CheckIn:  tc.checkIn,
				CheckOut: tc.checkOut,
			})
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	var n int64
	db.Model(&models.Booking{}).Count(&n)
	if n != 0 {
		t.Errorf("rejected bookings must not be persisted, found %d rows", n)
	}
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	svc := NewBookingService(db)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:   user.ID,
		RoomID:   9999,
		CheckIn:  "2024-06-01",
		CheckOut: "2024-06-05",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	other := seedUser(t, db, "other@example.com")
	room := seedRoom(t, db, 1000, "")
	svc := NewBookingService(db)

	mustCreateBooking(t, svc, user.ID, room.ID, "2024-06-01", "2024-06-05")

	// Fully overlapping request from another user loses.
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:   other.ID,
		RoomID:   room.ID,
		CheckIn:  "2024-06-01",
		CheckOut: "2024-06-05",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for overlapping range, got %v", err)
	}

	// Back-to-back is a conflict too: the boundary day is shared.
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:   other.ID,
		RoomID:   room.ID,
		CheckIn:  "2024-06-05",
		CheckOut: "2024-06-08",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for back-to-back range, got %v", err)
	}

	// Exactly one booking and one payment exist.
	var bookings, payments int64
	db.Model(&models.Booking{}).Count(&bookings)
	db.Model(&models.Payment{}).Count(&payments)
	if bookings != 1 || payments != 1 {
		t.Errorf("found %d bookings and %d payments, want 1 and 1", bookings, payments)
	}
}

func TestCreateBookingAfterCancellation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, 1000, "")
	svc := NewBookingService(db)

	first := mustCreateBooking(t, svc, user.ID, room.ID, "2024-06-01", "2024-06-05")
	if _, err := svc.UpdateStatus(context.Background(), first.ID, models.StatusCancelled); err != nil {
		t.Fatalf("cancelling booking: %v", err)
	}

	// The freed range can be booked again.
	mustCreateBooking(t, svc, user.ID, room.ID, "2024-06-01", "2024-06-05")
}

func TestUpdateStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, 1000, "")
	svc := NewBookingService(db)
	ctx := context.Background()

	booking := mustCreateBooking(t, svc, user.ID, room.ID, "2024-06-01", "2024-06-05")

	// Pending -> Completed skips confirmation and is rejected.
	if _, err := svc.UpdateStatus(ctx, booking.ID, models.StatusCompleted); !errors.Is(err, ErrValidation) {
		t.Errorf("Pending->Completed: expected ErrValidation, got %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, booking.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("Pending->Confirmed failed: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want %s", updated.Status, models.StatusConfirmed)
	}

	if _, err := svc.UpdateStatus(ctx, booking.ID, models.StatusCompleted); err != nil {
		t.Fatalf("Confirmed->Completed failed: %v", err)
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(ctx, booking.ID, models.StatusCancelled); !errors.Is(err, ErrValidation) {
		t.Errorf("Completed->Cancelled: expected ErrValidation, got %v", err)
	}

	// Unknown statuses never reach the store.
	if _, err := svc.UpdateStatus(ctx, booking.ID, "Archived"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: expected ErrValidation, got %v", err)
	}

	var current models.Booking
	if err := db.First(&current, booking.ID).Error; err != nil {
		t.Fatalf("reloading booking: %v", err)
	}
	if current.Status != models.StatusCompleted {
		t.Errorf("stored status = %s, want %s after rejected transitions", current.Status, models.StatusCompleted)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	if _, err := svc.UpdateStatus(context.Background(), 4242, models.StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	var n int64
	db.Model(&models.Booking{}).Count(&n)
	if n != 0 {
		t.Errorf("expected no mutation, found %d bookings", n)
	}
}

func TestListAllBookingsOrderedByCheckInDesc(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "guest@example.com")
	room := seedRoom(t, db, 1000, "")
	svc := NewBookingService(db)

	early := mustCreateBooking(t, svc, user.ID, room.ID, "2024-06-01", "2024-06-05")
	late := mustCreateBooking(t, svc, user.ID, room.ID, "2024-07-01", "2024-07-03")

	bookings, err := svc.ListAllBookings(context.Background())
	if err != nil {
		t.Fatalf("ListAllBookings failed: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("listed %d bookings, want 2", len(bookings))
	}
	if bookings[0].ID != late.ID || bookings[1].ID != early.ID {
		t.Errorf("order = [%d, %d], want [%d, %d] (check-in descending)",
			bookings[0].ID, bookings[1].ID, late.ID, early.ID)
	}
	if bookings[0].User.ID != user.ID {
		t.Error("admin projection must carry the booking user")
	}

	in := time.Time(bookings[0].CheckInDate)
	if in.Format(DateLayout) != "2024-07-01" {
		t.Errorf("check-in = %s, want 2024-07-01", in.Format(DateLayout))
	}
}
