package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authport "skillswap/internal/infrastructure/auth/port"
)

// userIDKey is the gin context key holding the authenticated user identity.
const userIDKey = "authUserID"

// RequireAuth verifies the bearer token on every request and stores the
// authenticated user ID in the gin context. Requests without a valid token
// are rejected with 401 before any handler runs.
func RequireAuth(verifier authport.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		userID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authentication required",
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user ID set by RequireAuth. Handlers behind the
// middleware can assume it is present.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(string)
	return userID
}

// bearerToken pulls the credential from the Authorization header, falling
// back to the token query parameter so websocket clients (which cannot set
// headers from the browser) can authenticate too.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
