package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/driveway/internal/models"
)

type CarService struct {
	store models.Store
}

func NewCarService(store models.Store) *CarService {
	return &CarService{store: store}
}

// CreateCar lists a new car for the given host. Ownership always comes from
// the caller's identity, never from the payload.
func (cs *CarService) CreateCar(ctx context.Context, hostID uuid.UUID, car *models.Car) (*models.Car, error) {
	if err := models.Validate.Struct(car); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}

	now := time.Now()
	car.ID = uuid.New()
	car.HostID = hostID
	car.Availability = true
	car.CreatedAt = now
	car.UpdatedAt = now

	return cs.store.Cars().CreateCar(ctx, car)
}

func (cs *CarService) GetCar(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	return cs.store.Cars().GetCarByID(ctx, id)
}

func (cs *CarService) ListAvailableCars(ctx context.Context) ([]*models.Car, error) {
	return cs.store.Cars().ListAvailableCars(ctx)
}

// SearchCars filters available cars by a case-insensitive location substring.
func (cs *CarService) SearchCars(ctx context.Context, location string) ([]*models.Car, error) {
	return cs.store.Cars().SearchCarsByLocation(ctx, location)
}

func (cs *CarService) ListCarsByHost(ctx context.Context, hostID uuid.UUID) ([]*models.Car, error) {
	return cs.store.Cars().ListCarsByHost(ctx, hostID)
}

// UpdateCar replaces a listing's mutable fields. Only the owning host may do
// this; the role check happens at the handler, the ownership check here.
func (cs *CarService) UpdateCar(ctx context.Context, requesterID, carID uuid.UUID, upd *models.CarUpdate) (*models.Car, error) {
	if err := models.Validate.Struct(upd); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidArgument, err)
	}

	car, err := cs.store.Cars().GetCarByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.HostID != requesterID {
		return nil, fmt.Errorf("%w: you can only update your own cars", models.ErrForbidden)
	}

	car.Make = upd.Make
	car.Model = upd.Model
	car.Year = upd.Year
	car.Price = upd.Price
	car.Location = upd.Location
	car.Description = upd.Description
	car.ImageURL = upd.ImageURL
	car.Features = upd.Features
	car.Availability = upd.Availability
	car.UpdatedAt = time.Now()

	return cs.store.Cars().UpdateCar(ctx, car)
}

func (cs *CarService) DeleteCar(ctx context.Context, requesterID, carID uuid.UUID) error {
	car, err := cs.store.Cars().GetCarByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.HostID != requesterID {
		return fmt.Errorf("%w: you can only delete your own cars", models.ErrForbidden)
	}
	return cs.store.Cars().DeleteCar(ctx, carID)
}
