package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiftmatch/staffing-api/internal/constants"
	"github.com/shiftmatch/staffing-api/internal/database"
	apierrors "github.com/shiftmatch/staffing-api/internal/errors"
	"github.com/shiftmatch/staffing-api/internal/models"
)

// RequirePostingOwnership checks that the posting in the :id parameter
// belongs to the current user, and stores it in the context for handlers.
func RequirePostingOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		postingIDStr := c.Param("id")
		postingID, err := strconv.ParseUint(postingIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid posting ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var posting models.JobPosting
		if err := database.GetDB().First(&posting, postingID).Error; err != nil {
			apierrors.NotFound(c, "Job posting not found")
			c.Abort()
			return
		}

		// 404 instead of 403 to avoid leaking posting existence
		if posting.OrganizerID != userID {
			apierrors.NotFound(c, "Job posting not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPosting, posting)
		c.Next()
	}
}

// GetPosting retrieves the posting loaded by RequirePostingOwnership
func GetPosting(c *gin.Context) (models.JobPosting, bool) {
	value, exists := c.Get(constants.ContextKeyPosting)
	if !exists {
		return models.JobPosting{}, false
	}

	posting, ok := value.(models.JobPosting)
	return posting, ok
}
