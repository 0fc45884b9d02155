package middleware

import (
	"errors"
	"net/http"
	"strings"

	"syncup/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

var (
	ErrMissingAuthHeader = errors.New("authorization header required")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
)

// ResolveSubject extracts the user id carried by an "Authorization: Bearer" header.
func ResolveSubject(jwtService *jwt.Service, header string) (int64, error) {
	if header == "" {
		return 0, ErrMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return 0, ErrInvalidAuthHeader
	}

	claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := ResolveSubject(jwtService, c.GetHeader("Authorization"))
		if err != nil {
			message := "Invalid or expired token"
			if errors.Is(err, ErrMissingAuthHeader) {
				message = "Authorization header required"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": message})
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth attaches the user id when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := ResolveSubject(jwtService, c.GetHeader("Authorization")); err == nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
