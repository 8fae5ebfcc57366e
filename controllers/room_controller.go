package controllers

import (
	"net/http"

	"roomify-backend/middleware"
	"roomify-backend/services"
	"roomify-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomController struct {
	Rooms        *services.RoomService
	Availability *services.AvailabilityService
}

func NewRoomController(rooms *services.RoomService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{Rooms: rooms, Availability: availability}
}

type roomPayload struct {
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description string          `json:"description" binding:"required"`
	ImageURL    string          `json:"image_url"`
	PostalCode  string          `json:"postal_code"`
}

func (p roomPayload) toInput() services.RoomInput {
	return services.RoomInput{
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		PostalCode:  p.PostalCode,
	}
}

// ListAvailable handles GET /api/rooms. With ?q= it searches available rooms
// by city or area, otherwise it lists every available room.
func (ctrl *RoomController) ListAvailable(c *gin.Context) {
	var (
		rooms interface{}
		err   error
	)
	if q := c.Query("q"); q != "" {
		rooms, err = ctrl.Rooms.SearchRooms(c.Request.Context(), q)
	} else {
		rooms, err = ctrl.Rooms.ListAvailableRooms(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// ListAll handles GET /api/rooms/all (admin management view).
func (ctrl *RoomController) ListAll(c *gin.Context) {
	rooms, err := ctrl.Rooms.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// Get handles GET /api/rooms/:id.
func (ctrl *RoomController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// Create handles POST /api/rooms (admin only). The authenticated admin
// becomes the room's owner.
func (ctrl *RoomController) Create(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	principal, _ := middleware.PrincipalFrom(c)
	room, err := ctrl.Rooms.CreateRoom(c.Request.Context(), principal.ID, payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// Update handles PUT /api/rooms/:id (admin only).
func (ctrl *RoomController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	room, err := ctrl.Rooms.UpdateRoom(c.Request.Context(), id, payload.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/:id (admin only).
func (ctrl *RoomController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctrl.Rooms.DeleteRoom(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted")
}

// CheckAvailability handles GET /api/rooms/:id/availability.
func (ctrl *RoomController) CheckAvailability(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out are required")
		return
	}

	available, err := ctrl.Availability.IsAvailable(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_id":   id,
		"check_in":  checkIn,
		"check_out": checkOut,
		"available": available,
	})
}

// Quote handles GET /api/rooms/:id/quote: total cost and night count for a
// stay, without creating anything.
func (ctrl *RoomController) Quote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		utils.JSONError(c, http.StatusBadRequest, "check_in and check_out are required")
		return
	}

	room, err := ctrl.Rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	total, nights, err := services.ComputeCost(room.Price, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_id":         id,
		"price_per_night": room.Price,
		"nights":          nights,
		"total_cost":      total,
	})
}

// Locations handles GET /api/locations.
func (ctrl *RoomController) Locations(c *gin.Context) {
	locations, err := ctrl.Rooms.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, locations)
}
