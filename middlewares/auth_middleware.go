package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ordering-system/utils"
)

// AuthMiddleware validates the bearer token and attaches the staff
// identity to the request context. This replaces any process-wide login
// state; every request carries its own auth context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.StaffID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid staff id in token"))
			c.Abort()
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("account", claims.Account)
		c.Set("class", claims.Class)

		c.Next()
	}
}
