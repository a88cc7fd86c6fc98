package container

import (
	"log/slog"

	"github.com/joshua-takyi/driveway/internal/helpers"
	"github.com/joshua-takyi/driveway/internal/models"
	"github.com/joshua-takyi/driveway/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger   *slog.Logger
	Store    models.Store
	Verifier *helpers.TokenVerifier

	UserService    *services.UserService
	CarService     *services.CarService
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	store models.Store,
	verifier *helpers.TokenVerifier,
	jwtSecret string,
) *Container {
	userService := services.NewUserService(store, jwtSecret)
	carService := services.NewCarService(store)
	bookingService := services.NewBookingService(store)

	return &Container{
		Logger:         logger,
		Store:          store,
		Verifier:       verifier,
		UserService:    userService,
		CarService:     carService,
		BookingService: bookingService,
	}
}
