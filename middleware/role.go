package middleware

import (
	"net/http"
	"slices"

	"salonbook/models"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the listed roles. It must
// run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Insufficient authorization", "")
			return
		}
		if !slices.Contains(roles, actor.Role) {
			utils.JSONError(c, http.StatusForbidden, "forbidden", "Your role cannot access this resource", "")
			return
		}
		c.Next()
	}
}
