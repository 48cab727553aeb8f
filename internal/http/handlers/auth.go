package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hotelapi/internal/http/middleware"
	"hotelapi/internal/repositories"
	"hotelapi/internal/services"
	"hotelapi/internal/utils"
)

var (
	jwtSecret []byte
	tokenTTL  = 3 * time.Hour
)

// SetAuthConfig wires the token secret and TTL from the environment.
func SetAuthConfig(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := repositories.UserRepository{}.GetByLogin(req.Login)
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusUnauthorized, "wrong login or password", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to query user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong login or password", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(user.ID),
		"login":   user.Login,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "login="+user.Login)
	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

type registerRequest struct {
	Document string `json:"document" binding:"required,min=9,max=14"`
	Name     string `json:"name" binding:"required,min=4,max=60"`
	Email    string `json:"email" binding:"omitempty,email"`
	Login    string `json:"login" binding:"required,min=4,max=12"`
	Password string `json:"password" binding:"required,min=4,max=8"`
	Phone    string `json:"phone" binding:"required,min=8,max=9"`
	PhoneDDD string `json:"phone_ddd" binding:"required,len=2"`
	PhoneDDI string `json:"phone_ddi" binding:"required,len=2"`
	Role     string `json:"role" binding:"required,oneof=A a G g U u"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.UserService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Save(services.UserInput{
		Document: req.Document,
		Name:     req.Name,
		Email:    req.Email,
		Login:    req.Login,
		Password: req.Password,
		Phone:    req.Phone,
		PhoneDDD: req.PhoneDDD,
		PhoneDDI: req.PhoneDDI,
		Role:     req.Role,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered", "user": user})
}

// POST /api/auth/logout — tokens are stateless, the client just drops it.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}
