package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talibjameel/gemStore-backend/token"
)

// RequireAuth validates the Authorization header and injects the caller's
// identity into the gin context. Handlers behind it read "user_id" without a
// fallback: a request only reaches them after the token checked out.
// The header may carry "Bearer <token>" or a bare token; a "token" query
// parameter is accepted when the header is absent.
func RequireAuth(tokenSvc *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			// Browser WebSocket clients cannot set request headers, so the
			// live order feed passes the token as a query parameter.
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
