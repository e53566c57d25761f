package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ordering-system/models"
	"ordering-system/utils"
)

// ManagerOnly gates staff-account administration behind the Manager class.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		class, exists := c.Get("class")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		if class != models.StaffClassManager {
			utils.RespondError(c, http.StatusForbidden, errors.New("manager access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
