package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/driveway/internal/helpers"
	"github.com/joshua-takyi/driveway/internal/models"
)

// respondError maps a service error kind to its HTTP status and stable code.
// Infrastructure failures are attached to the gin context for the error
// middleware to log and are never echoed to the caller.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidArgument):
		status = http.StatusBadRequest
	default:
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, helpers.CodedErrorResponse(models.ErrorCode(err), msg))
}

// currentClaims pulls the verified caller identity set by the auth middleware.
// The false return means a response has already been written.
func currentClaims(c *gin.Context) (*helpers.Claims, bool) {
	v, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	if !ok {
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}
