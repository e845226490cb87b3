package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davinpratama/resto-ops/utils"
)

// RequireRoles membatasi route untuk role tertentu. Dipasang setelah
// AuthMiddleware yang mengisi "role" di context.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found in context"))
			c.Abort()
			return
		}

		role, _ := roleInterface.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission"))
		c.Abort()
	}
}
