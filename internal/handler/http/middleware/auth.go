package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// AuthMiddleware verifies the bearer token and stores the authenticated
// user's ID in the gin context under "userID".
func AuthMiddleware(userUsecase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}
		user, err := userUsecase.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired access token"})
			return
		}
		c.Set("userID", user.ID)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but lets anonymous
// requests through. Public reads use it to personalize liked_by_me.
func OptionalAuth(userUsecase usecasecontract.IUserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, err := userUsecase.Authenticate(c.Request.Context(), token); err == nil {
				c.Set("userID", user.ID)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
