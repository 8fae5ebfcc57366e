package controllers

import (
	"net/http"

	"roomify-backend/middleware"
	"roomify-backend/services"
	"roomify-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type createBookingPayload struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	// Admins may book on behalf of a user; for everyone else the
	// authenticated user is the booking owner.
	UserID uint `json:"user_id"`
}

type updateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /api/bookings.
func (ctrl *BookingController) Create(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	userID := principal.ID
	if payload.UserID != 0 && principal.Role == services.RoleAdmin {
		userID = payload.UserID
	}

	booking, err := ctrl.Bookings.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		UserID:   userID,
		RoomID:   payload.RoomID,
		CheckIn:  payload.CheckIn,
		CheckOut: payload.CheckOut,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// ListMine handles GET /api/bookings: the caller's own bookings.
func (ctrl *BookingController) ListMine(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	bookings, err := ctrl.Bookings.ListBookingsForUser(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// ListAll handles GET /api/bookings/all (admin only).
func (ctrl *BookingController) ListAll(c *gin.Context) {
	bookings, err := ctrl.Bookings.ListAllBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Get handles GET /api/bookings/:id. Users may only read their own bookings;
// admins may read any.
func (ctrl *BookingController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.GetBookingDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	if principal.Role != services.RoleAdmin && booking.UserID != principal.ID {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateStatus handles PATCH /api/bookings/:id/status (admin only).
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	booking, err := ctrl.Bookings.UpdateStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
