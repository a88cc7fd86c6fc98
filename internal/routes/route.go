package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/driveway/internal/container"
	"github.com/joshua-takyi/driveway/internal/handlers"
	"github.com/joshua-takyi/driveway/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	auth := middleware.AuthMiddleware(container.Verifier, container.Logger)

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "driveway-api",
			})
		})

		// public routes
		v1.POST("/auth/register", handlers.Register(container.UserService))
		v1.POST("/auth/login", handlers.Login(container.UserService))
	}

	carRoutes := v1.Group("/cars")
	{
		carRoutes.GET("", handlers.ListCars(container.CarService))
		// search must be registered before /:id so "search" is not taken
		// for a car id
		carRoutes.GET("/search", handlers.SearchCars(container.CarService))
		carRoutes.GET("/:id", handlers.GetCarByID(container.CarService))
		carRoutes.GET("/host/:hostId", auth, handlers.ListCarsByHost(container.CarService))
		carRoutes.POST("", auth, handlers.CreateCar(container.CarService))
		carRoutes.PUT("/:id", auth, handlers.UpdateCar(container.CarService))
		carRoutes.DELETE("/:id", auth, handlers.DeleteCar(container.CarService))
	}

	bookingRoutes := v1.Group("/bookings")
	bookingRoutes.Use(auth)
	{
		bookingRoutes.POST("", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/user/:userId", handlers.ListBookingsByUser(container.BookingService))
		bookingRoutes.GET("/car/:carId", handlers.ListBookingsByCar(container.BookingService))
		bookingRoutes.PATCH("/:id", handlers.UpdateBookingStatus(container.BookingService))
	}

	return r
}
