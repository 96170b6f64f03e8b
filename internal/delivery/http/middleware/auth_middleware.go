package middleware

import (
	"net/http"

	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"
	"internport-backend/pkg/auth"
	"internport-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// RequireToken verifies the bearer token and stores the caller's id, email
// and role in the context.
func RequireToken(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Token is missing")
			return
		}

		claims, err := tm.VerifyToken(token)
		if err != nil {
			security.DefaultLogger().LogAccessDenied(c.Request.Context(), security.EventUnauthorizedAccess,
				c.ClientIP(), c.GetString(string(domain.KeyRequestID)), c.FullPath(), "")
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserRole), claims.Role)
		c.Next()
	}
}

// RequireRole must run after RequireToken.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := CurrentRole(c)
		if !allowed[role] {
			security.DefaultLogger().LogAccessDenied(c.Request.Context(), security.EventForbiddenAccess,
				c.ClientIP(), c.GetString(string(domain.KeyRequestID)), c.FullPath(), role)
			response.Abort(c, http.StatusForbidden, "Unauthorized access")
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(string(domain.KeyUserID))
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserRole))
}
