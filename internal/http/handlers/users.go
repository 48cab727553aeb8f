package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelapi/internal/http/middleware"
	"hotelapi/internal/services"
)

func userService(c *gin.Context) services.UserService {
	return services.UserService{RequestID: middleware.GetRequestID(c)}
}

type userRequest struct {
	Document string `json:"document" binding:"required,min=9,max=14"`
	Name     string `json:"name" binding:"required,min=4,max=60"`
	Email    string `json:"email" binding:"omitempty,email"`
	Login    string `json:"login" binding:"required,min=4,max=12"`
	Password string `json:"password" binding:"omitempty,min=4,max=8"`
	Phone    string `json:"phone" binding:"required,min=8,max=9"`
	PhoneDDD string `json:"phone_ddd" binding:"required,len=2"`
	PhoneDDI string `json:"phone_ddi" binding:"required,len=2"`
	Role     string `json:"role" binding:"required,oneof=A a G g U u"`
}

func (r userRequest) toInput() services.UserInput {
	return services.UserInput{
		Document: r.Document,
		Name:     r.Name,
		Email:    r.Email,
		Login:    r.Login,
		Password: r.Password,
		Phone:    r.Phone,
		PhoneDDD: r.PhoneDDD,
		PhoneDDI: r.PhoneDDI,
		Role:     r.Role,
	}
}

// GET /api/users
func GetUsers(c *gin.Context) {
	users, err := userService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	user, err := userService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := userService(c).Save(req.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /api/users/:id — password and bookings are preserved.
func UpdateUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := userService(c).Update(id, req.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := userService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/users
func DeleteAllUsers(c *gin.Context) {
	if err := userService(c).DeleteAll(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func guestQueryFromParams(c *gin.Context) services.GuestQuery {
	return services.GuestQuery{
		Document: c.Query("document"),
		Name:     c.Query("name"),
		Phone:    c.Query("phone"),
		PhoneDDD: c.Query("phone_ddd"),
		PhoneDDI: c.Query("phone_ddi"),
	}
}

// GET /api/guests/staying
func GetGuestsStaying(c *gin.Context) {
	users, err := userService(c).FindGuestsStaying(guestQueryFromParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/guests/upcoming
func GetGuestsUpcoming(c *gin.Context) {
	users, err := userService(c).FindGuestsWithUpcomingBooking(guestQueryFromParams(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
