package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "hotel-booking-service/internal/handler/dto/request"
	resdto "hotel-booking-service/internal/handler/dto/response"
	"hotel-booking-service/internal/usecase/commands"
	"hotel-booking-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomQueries  queries.RoomQueries
	availability commands.AvailabilityChecker
}

func NewRoomHandler(roomQueries queries.RoomQueries, availability commands.AvailabilityChecker) *RoomHandler {
	return &RoomHandler{
		roomQueries:  roomQueries,
		availability: availability,
	}
}

// @Summary List rooms
// @Description List rooms in the catalog, optionally filtered
// @Tags rooms
// @Produce json
// @Param room_type query string false "Room type filter"
// @Param min_capacity query int false "Minimum capacity"
// @Param max_price_cents query int false "Maximum nightly price in cents"
// @Param only_available query bool false "Only rooms open for booking"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var req reqdto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	rooms, err := h.roomQueries.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		response = append(response, resdto.FromRoomView(r))
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get room
// @Description Get room by ID
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	room, err := h.roomQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(room))
}

// @Summary Check room availability
// @Description Check whether the room is free for a half-open [check_in, check_out) range
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "check_in and check_out are required",
		})
		return
	}

	checkIn, checkOut, err := req.StayDates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use YYYY-MM-DD format",
		})
		return
	}

	available, err := h.availability.IsAvailable(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-out must be after check-in",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    id,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Available: available,
	})
}
