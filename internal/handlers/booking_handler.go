package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/driveway/internal/helpers"
	"github.com/joshua-takyi/driveway/internal/models"
	"github.com/joshua-takyi/driveway/internal/services"
)

type createBookingRequest struct {
	CarID     uuid.UUID   `json:"carId"`
	StartDate models.Date `json:"startDate"`
	EndDate   models.Date `json:"endDate"`
	// Clients send their locally computed total; the server recomputes it from
	// the car's price and ignores this value.
	TotalPrice float64 `json:"totalPrice"`
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		var req createBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		renterID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		booking, err := bs.CreateBooking(c.Request.Context(), renterID, req.CarID, req.StartDate, req.EndDate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(booking, "Booking confirmed"))
	}
}

func ListBookingsByUser(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		userID, err := uuid.Parse(helpers.StringTrim(c.Param("userId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID format"))
			return
		}

		requesterID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		bookings, err := bs.ListByUser(c.Request.Context(), requesterID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(bookings, ""))
	}
}

func ListBookingsByCar(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		carID, err := uuid.Parse(helpers.StringTrim(c.Param("carId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid car ID format"))
			return
		}

		requesterID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		bookings, err := bs.ListByCar(c.Request.Context(), requesterID, carID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(bookings, ""))
	}
}

func UpdateBookingStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}

		bookingID, err := uuid.Parse(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid booking ID format"))
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		requesterID, err := claims.UserUUID()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid user ID in token"))
			return
		}

		booking, err := bs.UpdateStatus(c.Request.Context(), requesterID, bookingID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, "Booking status updated"))
	}
}
