package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/constants"
	"github.com/shiftmatch/staffing-api/internal/database"
	apierrors "github.com/shiftmatch/staffing-api/internal/errors"
	"github.com/shiftmatch/staffing-api/internal/models"
)

// RequireRole restricts a route to profiles registered with the given role.
// Must run after RequireAuth.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if user.Role != role {
			apierrors.Forbidden(c, "This action requires a "+string(role)+" account")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRole, user.Role)
		c.Next()
	}
}
