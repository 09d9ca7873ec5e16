package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GianniRod/Real-Futbol/internal/forum"
)

// ErrorResponse sends a standardized error response and logs at caller if needed
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ForumErrorResponse maps the forum error taxonomy onto HTTP statuses
func ForumErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, forum.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, forum.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, forum.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, forum.ErrInvalidOperation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, forum.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}
	ErrorResponse(c, status, err.Error())
}
