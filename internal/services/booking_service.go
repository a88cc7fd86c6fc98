package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/driveway/internal/models"
)

// BookingService owns booking admission and status transitions. All store
// access goes through the injected models.Store so the same logic runs against
// the relational store in production and the in-memory store in tests.
type BookingService struct {
	store models.Store
}

func NewBookingService(store models.Store) *BookingService {
	return &BookingService{store: store}
}

// CreateBooking admits a new reservation for a car and date range. The
// availability check, the overlap check and the insert all run under the
// store's per-car admission lock, so two concurrent requests for overlapping
// ranges can never both commit.
//
// A candidate conflicts with an existing non-cancelled booking when either
// boundary date falls inside the existing range or the candidate encloses it.
// Boundaries are inclusive on both sides: a booking ending on day D blocks one
// starting on day D.
func (bs *BookingService) CreateBooking(ctx context.Context, renterID uuid.UUID, carID uuid.UUID, startDate, endDate models.Date) (*models.Booking, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date and end_date are required", models.ErrInvalidArgument)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end_date %s is before start_date %s", models.ErrInvalidArgument, endDate, startDate)
	}

	var created *models.Booking
	err := bs.store.AdmitBooking(ctx, carID, func(tx models.Store) error {
		car, err := tx.Cars().GetCarByID(ctx, carID)
		if err != nil {
			return err
		}
		if !car.Availability {
			return fmt.Errorf("%w: car %s is not available", models.ErrNotFound, carID)
		}

		existing, err := tx.Bookings().ListActiveBookingsByCar(ctx, carID)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.OverlapsRange(startDate, endDate) {
				return fmt.Errorf("%w: car %s is already booked from %s to %s",
					models.ErrBookingConflict, carID, b.StartDate, b.EndDate)
			}
		}

		now := time.Now()
		booking := &models.Booking{
			ID:         uuid.New(),
			UserID:     renterID,
			CarID:      carID,
			StartDate:  startDate,
			EndDate:    endDate,
			TotalPrice: car.Price * float64(startDate.DaysInclusive(endDate)),
			Status:     models.BookingConfirmed,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		created, err = tx.Bookings().CreateBooking(ctx, booking)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus applies a status change to a booking. The renter may only
// cancel; the car's owning host may set any of the four statuses, with no
// guard on the booking's previous status.
func (bs *BookingService) UpdateStatus(ctx context.Context, requesterID uuid.UUID, bookingID uuid.UUID, newStatus string) (*models.Booking, error) {
	status, ok := models.ParseBookingStatus(newStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown booking status %q", models.ErrInvalidArgument, newStatus)
	}

	booking, err := bs.store.Bookings().GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	car, err := bs.store.Cars().GetCarByID(ctx, booking.CarID)
	if err != nil {
		return nil, err
	}

	isRenter := booking.UserID == requesterID
	isHost := car.HostID == requesterID
	if !isRenter && !isHost {
		return nil, fmt.Errorf("%w: only the renter or the car's host may change this booking", models.ErrForbidden)
	}
	if isRenter && !isHost && status != models.BookingCancelled {
		return nil, fmt.Errorf("%w: renters may only cancel bookings", models.ErrForbidden)
	}

	return bs.store.Bookings().UpdateBookingStatus(ctx, bookingID, status)
}

// ListByUser returns a renter's bookings. Callers may only list their own.
func (bs *BookingService) ListByUser(ctx context.Context, requesterID, userID uuid.UUID) ([]*models.BookingWithCar, error) {
	if requesterID != userID {
		return nil, fmt.Errorf("%w: bookings are only visible to their renter", models.ErrForbidden)
	}
	return bs.store.Bookings().ListBookingsByUser(ctx, userID)
}

// ListByCar returns a car's bookings for its owning host.
func (bs *BookingService) ListByCar(ctx context.Context, requesterID, carID uuid.UUID) ([]*models.BookingWithUser, error) {
	car, err := bs.store.Cars().GetCarByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.HostID != requesterID {
		return nil, fmt.Errorf("%w: only the car's host may view its bookings", models.ErrForbidden)
	}
	return bs.store.Bookings().ListBookingsByCar(ctx, carID)
}
