package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/driveway/internal/helpers"
	"github.com/joshua-takyi/driveway/internal/models"
	"github.com/joshua-takyi/driveway/internal/services"
)

func CreateCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.CanListCars() {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("only hosts can list cars"))
			return
		}

		var car models.Car
		if err := c.ShouldBindJSON(&car); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		hostID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		created, err := cs.CreateCar(c.Request.Context(), hostID, &car)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Car listed successfully"))
	}
}

func ListCars(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cars, err := cs.ListAvailableCars(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(cars, ""))
	}
}

func SearchCars(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		location := helpers.StringTrim(c.Query("location"))
		cars, err := cs.SearchCars(c.Request.Context(), location)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(cars, ""))
	}
}

func GetCarByID(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid car ID format"))
			return
		}

		car, err := cs.GetCar(c.Request.Context(), carID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(car, ""))
	}
}

// ListCarsByHost serves any authenticated caller; host listings are not
// private to their owner.
func ListCarsByHost(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentClaims(c); !ok {
			return
		}

		hostID, err := uuid.Parse(helpers.StringTrim(c.Param("hostId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid host ID format"))
			return
		}

		cars, err := cs.ListCarsByHost(c.Request.Context(), hostID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(cars, ""))
	}
}

func UpdateCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.CanListCars() {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("only hosts can manage cars"))
			return
		}

		carID, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid car ID format"))
			return
		}

		var upd models.CarUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		requesterID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		updated, err := cs.UpdateCar(c.Request.Context(), requesterID, carID, &upd)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(updated, "Car updated successfully"))
	}
}

func DeleteCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.CanListCars() {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("only hosts can manage cars"))
			return
		}

		carID, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid car ID format"))
			return
		}

		requesterID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		if err := cs.DeleteCar(c.Request.Context(), requesterID, carID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Car deleted successfully"))
	}
}
