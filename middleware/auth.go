package middleware

import (
	"net/http"
	"strings"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's id
// and role in the gin context. Tokens are issued by the identity service.
func JWTAuthMiddleware() gin.HandlerFunc {
	return authenticate(false)
}

// DashboardAuthMiddleware is JWTAuthMiddleware for browser-served pages. It
// also accepts the token from the DashboardCookie, which browsers send with
// page and asset requests where no Authorization header can be set.
func DashboardAuthMiddleware() gin.HandlerFunc {
	return authenticate(true)
}

// DashboardCookie holds an admin token for the queue dashboard.
const DashboardCookie = "salonbook_dashboard"

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func authenticate(allowCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" && allowCookie {
			tokenString, _ = c.Cookie(DashboardCookie)
		}
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header", "")
			return
		}

		userID, role, err := utils.ExtractIdentity(tokenString)
		if err != nil {
			zap.L().Debug("rejected token", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Invalid token", "")
			return
		}
		if !models.Role(role).IsValid() {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Token carries an unknown role", "")
			return
		}

		c.Set(utils.ContextUserID, userID)
		c.Set(utils.ContextRole, role)
		c.Next()
	}
}

// ActorFromContext returns the caller set by JWTAuthMiddleware.
func ActorFromContext(c *gin.Context) (models.Actor, bool) {
	userID := c.GetString(utils.ContextUserID)
	role := c.GetString(utils.ContextRole)
	if userID == "" || role == "" {
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, Role: models.Role(role)}, true
}

// IssueDashboardCookie copies the caller's bearer token into an HttpOnly
// cookie scoped to path, so the browser can open the dashboard afterwards.
func IssueDashboardCookie(path string, maxAge time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header", "")
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(DashboardCookie, token, int(maxAge.Seconds()), path, "", secure, true)
		c.Status(http.StatusNoContent)
	}
}
