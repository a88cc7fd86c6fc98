package models

import (
	"context"

	"github.com/google/uuid"
)

type CarRepo interface {
	CreateCar(ctx context.Context, car *Car) (*Car, error)
	GetCarByID(ctx context.Context, id uuid.UUID) (*Car, error)
	ListAvailableCars(ctx context.Context) ([]*Car, error)
	SearchCarsByLocation(ctx context.Context, location string) ([]*Car, error)
	ListCarsByHost(ctx context.Context, hostID uuid.UUID) ([]*Car, error)
	UpdateCar(ctx context.Context, car *Car) (*Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID) error
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	// ListActiveBookingsByCar returns the car's bookings whose status still
	// blocks their date range (everything except cancelled).
	ListActiveBookingsByCar(ctx context.Context, carID uuid.UUID) ([]*Booking, error)
	ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*BookingWithCar, error)
	ListBookingsByCar(ctx context.Context, carID uuid.UUID) ([]*BookingWithUser, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// Store bundles the repositories behind one abstraction so the services never
// touch a concrete database. Two implementations exist: the GORM-backed store
// for production and an in-memory store for tests and demos.
type Store interface {
	Cars() CarRepo
	Bookings() BookingRepo
	Users() UserRepo

	// AdmitBooking runs fn while holding an exclusive admission lock for the
	// given car, so the availability check, overlap check and insert performed
	// inside fn are atomic with respect to concurrent admissions for the same
	// car. fn receives a Store view bound to the lock's transaction.
	AdmitBooking(ctx context.Context, carID uuid.UUID, fn func(tx Store) error) error
}
