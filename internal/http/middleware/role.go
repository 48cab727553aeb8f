package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelapi/internal/domain/models"
)

// RequireAuthority only lets through identities whose role grants the given
// authority. ADMIN implies ATTENDANT and GUEST; the others stand alone.
// Assumes RequireAuth ran earlier on the chain.
func RequireAuthority(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := GetRequestContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized: no identity on context",
			})
			return
		}

		role, ok := models.ParseUserRole(rc.Role)
		if !ok || !role.HasAuthority(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden: insufficient role",
			})
			return
		}

		c.Next()
	}
}
