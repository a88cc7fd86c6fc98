package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func seedCar(t *testing.T, store Store, hostID uuid.UUID, location string) *Car {
	t.Helper()
	car := &Car{
		ID:           uuid.New(),
		HostID:       hostID,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2020,
		Price:        75,
		Location:     location,
		Availability: true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	created, err := store.Cars().CreateCar(context.Background(), car)
	if err != nil {
		t.Fatalf("CreateCar: %v", err)
	}
	return created
}

func TestMemoryStoreCarLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	hostID := uuid.New()

	car := seedCar(t, store, hostID, "San Francisco, CA")

	got, err := store.Cars().GetCarByID(ctx, car.ID)
	if err != nil {
		t.Fatalf("GetCarByID: %v", err)
	}
	if got.HostID != hostID {
		t.Fatalf("expected host %s, got %s", hostID, got.HostID)
	}

	if _, err := store.Cars().GetCarByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got.Availability = false
	if _, err := store.Cars().UpdateCar(ctx, got); err != nil {
		t.Fatalf("UpdateCar: %v", err)
	}
	cars, err := store.Cars().ListAvailableCars(ctx)
	if err != nil {
		t.Fatalf("ListAvailableCars: %v", err)
	}
	if len(cars) != 0 {
		t.Fatalf("unavailable car should be hidden from public listing, got %d", len(cars))
	}

	if err := store.Cars().DeleteCar(ctx, car.ID); err != nil {
		t.Fatalf("DeleteCar: %v", err)
	}
	if err := store.Cars().DeleteCar(ctx, car.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryStoreSearchByLocation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seedCar(t, store, uuid.New(), "San Francisco, CA")
	seedCar(t, store, uuid.New(), "Los Angeles, CA")
	hidden := seedCar(t, store, uuid.New(), "san jose, ca")
	hidden.Availability = false
	if _, err := store.Cars().UpdateCar(ctx, hidden); err != nil {
		t.Fatalf("UpdateCar: %v", err)
	}

	// substring match is case-insensitive
	cars, err := store.Cars().SearchCarsByLocation(ctx, "SAN")
	if err != nil {
		t.Fatalf("SearchCarsByLocation: %v", err)
	}
	if len(cars) != 1 {
		t.Fatalf("expected 1 match (unavailable car excluded), got %d", len(cars))
	}
	if cars[0].Location != "San Francisco, CA" {
		t.Fatalf("unexpected match: %s", cars[0].Location)
	}

	// empty filter returns every available car
	cars, err = store.Cars().SearchCarsByLocation(ctx, "")
	if err != nil {
		t.Fatalf("SearchCarsByLocation: %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("expected 2 available cars, got %d", len(cars))
	}
}

func TestMemoryStoreActiveBookings(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	car := seedCar(t, store, uuid.New(), "Denver, CO")

	mk := func(status BookingStatus) *Booking {
		b := &Booking{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			CarID:     car.ID,
			StartDate: NewDate(2024, time.June, 1),
			EndDate:   NewDate(2024, time.June, 3),
			Status:    status,
		}
		created, err := store.Bookings().CreateBooking(ctx, b)
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		return created
	}

	mk(BookingConfirmed)
	mk(BookingPending)
	mk(BookingCompleted)
	cancelled := mk(BookingConfirmed)
	if _, err := store.Bookings().UpdateBookingStatus(ctx, cancelled.ID, BookingCancelled); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}

	active, err := store.Bookings().ListActiveBookingsByCar(ctx, car.ID)
	if err != nil {
		t.Fatalf("ListActiveBookingsByCar: %v", err)
	}
	// only the cancelled booking releases its dates
	if len(active) != 3 {
		t.Fatalf("expected 3 active bookings, got %d", len(active))
	}
}

func TestMemoryStoreBookingProjections(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	renter := &User{ID: uuid.New(), Name: "Dana", Email: "dana@example.com", Role: RoleUser}
	if _, err := store.Users().CreateUser(ctx, renter); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	car := seedCar(t, store, uuid.New(), "Austin, TX")

	b := &Booking{
		ID:        uuid.New(),
		UserID:    renter.ID,
		CarID:     car.ID,
		StartDate: NewDate(2024, time.June, 1),
		EndDate:   NewDate(2024, time.June, 2),
		Status:    BookingConfirmed,
	}
	if _, err := store.Bookings().CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	byUser, err := store.Bookings().ListBookingsByUser(ctx, renter.ID)
	if err != nil {
		t.Fatalf("ListBookingsByUser: %v", err)
	}
	if len(byUser) != 1 || byUser[0].Car == nil || byUser[0].Car.Make != "Toyota" {
		t.Fatalf("expected booking joined with car summary, got %+v", byUser)
	}

	byCar, err := store.Bookings().ListBookingsByCar(ctx, car.ID)
	if err != nil {
		t.Fatalf("ListBookingsByCar: %v", err)
	}
	if len(byCar) != 1 || byCar[0].User == nil || byCar[0].User.Email != "dana@example.com" {
		t.Fatalf("expected booking joined with renter summary, got %+v", byCar)
	}
}

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	u := &User{ID: uuid.New(), Name: "A", Email: "a@example.com", Role: RoleUser}
	if _, err := store.Users().CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	dup := &User{ID: uuid.New(), Name: "B", Email: "A@Example.com", Role: RoleUser}
	if _, err := store.Users().CreateUser(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate email, got %v", err)
	}
}
