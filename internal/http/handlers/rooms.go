package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelapi/internal/http/middleware"
	"hotelapi/internal/services"
)

func roomService(c *gin.Context) services.RoomService {
	return services.RoomService{RequestID: middleware.GetRequestID(c)}
}

type roomRequest struct {
	Number int `json:"number" binding:"required,min=1,max=1000"`
}

// GET /api/rooms
func GetRooms(c *gin.Context) {
	rooms, err := roomService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/rooms/:id
func GetRoomByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	room, err := roomService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// POST /api/rooms
func CreateRoom(c *gin.Context) {
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	room, err := roomService(c).Save(req.Number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PUT /api/rooms/:id
func UpdateRoom(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req roomRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	room, err := roomService(c).Update(id, req.Number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /api/rooms/:id — removes the room's bookings along with it.
func DeleteRoom(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := roomService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/rooms
func DeleteAllRooms(c *gin.Context) {
	if err := roomService(c).DeleteAll(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
