package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotelapi/internal/domain"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/services"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type guestFinderRequest struct {
	Document string `json:"document" binding:"omitempty,min=9,max=14"`
	Name     string `json:"name" binding:"omitempty,min=4,max=60"`
	Phone    string `json:"phone" binding:"omitempty,min=8,max=10"`
	PhoneDDD string `json:"phone_ddd" binding:"omitempty,min=1,max=3"`
	PhoneDDI string `json:"phone_ddi" binding:"omitempty,min=1,max=2"`
}

func (g guestFinderRequest) toQuery() services.GuestQuery {
	return services.GuestQuery{
		Document: g.Document,
		Name:     g.Name,
		Phone:    g.Phone,
		PhoneDDD: g.PhoneDDD,
		PhoneDDI: g.PhoneDDI,
	}
}

type roomRefRequest struct {
	ID     int64 `json:"id"`
	Number int   `json:"number" binding:"omitempty,min=1,max=1000"`
}

type bookingCreateRequest struct {
	Room     roomRefRequest     `json:"room" binding:"required"`
	Guest    guestFinderRequest `json:"guest" binding:"required"`
	CheckIn  time.Time          `json:"check_in" binding:"required"`
	CheckOut *time.Time         `json:"check_out"`
	Status   string             `json:"status" binding:"omitempty,oneof=C c E e F f S s"`
}

type bookingUpdateRequest struct {
	CheckIn  time.Time  `json:"check_in" binding:"required"`
	CheckOut *time.Time `json:"check_out"`
	Status   string     `json:"status" binding:"omitempty,oneof=C c E e F f S s"`
}

type checkInRequest struct {
	CheckIn time.Time `json:"check_in" binding:"required"`
}

// GET /api/bookings
func GetBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	booking, err := bookingService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req bookingCreateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := bookingService(c).Create(services.BookingCreateInput{
		RoomID:     domain.ID(req.Room.ID),
		RoomNumber: req.Room.Number,
		Guest:      req.Guest.toQuery(),
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     req.Status,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// PUT /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req bookingUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := bookingService(c).Update(id, services.BookingUpdateInput{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Status:   req.Status,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PUT /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if _, err := bookingService(c).Cancel(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/bookings/:id/checkin
func CheckInBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req checkInRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, err := bookingService(c).CheckIn(id, req.CheckIn); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/bookings/:id/checkout
func CheckOutBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if _, err := bookingService(c).CheckOut(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/bookings/:id
func DeleteBooking(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := bookingService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/bookings
func DeleteAllBookings(c *gin.Context) {
	if err := bookingService(c).DeleteAll(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/bookings/:id/voucher
func GetBookingVoucherPDF(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	svc := services.VoucherService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
