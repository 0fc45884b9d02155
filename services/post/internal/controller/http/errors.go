package http

import (
	"errors"
	"net/http"
	"strconv"

	"syncup/pkg/middleware"
	"syncup/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
)

func (h *PostHandler) respondError(c *gin.Context, err error, action string) {
	var vErr *usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts."})
	case errors.Is(err, usecase.ErrPostNotPublic):
		c.JSON(http.StatusForbidden, gin.H{"error": "Post is not public."})
	default:
		h.logger.Error("Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// postIDParam parses the :id path segment, answering 400 when it is not a
// positive integer.
func postIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID."})
		return 0, false
	}
	return id, true
}

func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return 0, false
	}
	return userID, true
}
