package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

// RequirePermission looks the authenticated user up and checks the named
// permission flag. Admins pass every check; deactivated users pass none.
func RequirePermission(db *gorm.DB, flag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDInterface, exists := c.Get("user_id")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		userID, ok := userIDInterface.(uint)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		if !user.IsActive || !user.HasPermission(flag) {
			utils.RespondError(c, http.StatusForbidden, utils.ErrForbidden)
			c.Abort()
			return
		}

		c.Set("current_user", &user)
		c.Next()
	}
}
