package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/driveway/internal/helpers"
	"github.com/joshua-takyi/driveway/internal/models"
	"github.com/joshua-takyi/driveway/internal/services"
)

func Register(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		user, token, err := us.Register(c.Request.Context(), &in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{
			"user":  user,
			"token": token,
		}, "Account created"))
	}
}

func Login(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		user, token, err := us.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			// Bad credentials come back as 401, not 403: the caller failed to
			// authenticate rather than being denied a resource.
			if errors.Is(err, models.ErrForbidden) {
				c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("invalid credentials"))
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"user":  user,
			"token": token,
		}, "Logged in"))
	}
}
