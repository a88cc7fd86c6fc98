package models

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory sqlite database. The GORM
// store is dialect-agnostic apart from the Postgres advisory lock, so sqlite
// exercises the same queries production runs.
func openTestDB(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Car{}, &Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormStore(db)
}

func TestGormStoreCarQueries(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()
	hostID := uuid.New()

	mkCar := func(location string, available bool) *Car {
		car := &Car{
			ID:           uuid.New(),
			HostID:       hostID,
			Make:         "Honda",
			Model:        "Civic",
			Year:         2021,
			Price:        60,
			Location:     location,
			Features:     []string{"bluetooth", "backup camera"},
			Availability: available,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if _, err := store.CreateCar(ctx, car); err != nil {
			t.Fatalf("CreateCar: %v", err)
		}
		return car
	}

	mkCar("Portland, OR", true)
	mkCar("Salem, OR", true)
	mkCar("portland, or", false)

	available, err := store.ListAvailableCars(ctx)
	if err != nil {
		t.Fatalf("ListAvailableCars: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 available cars, got %d", len(available))
	}

	matches, err := store.SearchCarsByLocation(ctx, "PORTLAND")
	if err != nil {
		t.Fatalf("SearchCarsByLocation: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 available portland car, got %d", len(matches))
	}
	if len(matches[0].Features) != 2 {
		t.Fatalf("features did not survive the round trip: %+v", matches[0].Features)
	}

	byHost, err := store.ListCarsByHost(ctx, hostID)
	if err != nil {
		t.Fatalf("ListCarsByHost: %v", err)
	}
	if len(byHost) != 3 {
		t.Fatalf("host listing should include unavailable cars, got %d", len(byHost))
	}

	if _, err := store.GetCarByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormStoreActiveBookingFilter(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	car := &Car{
		ID: uuid.New(), HostID: uuid.New(),
		Make: "Ford", Model: "Focus", Year: 2019, Price: 50,
		Location: "Boise, ID", Availability: true,
	}
	if _, err := store.CreateCar(ctx, car); err != nil {
		t.Fatalf("CreateCar: %v", err)
	}

	mk := func(status BookingStatus, startDay int) {
		b := &Booking{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			CarID:     car.ID,
			StartDate: NewDate(2024, time.June, startDay),
			EndDate:   NewDate(2024, time.June, startDay+1),
			Status:    status,
		}
		if _, err := store.CreateBooking(ctx, b); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
	}
	mk(BookingConfirmed, 1)
	mk(BookingCancelled, 10)
	mk(BookingPending, 20)

	active, err := store.ListActiveBookingsByCar(ctx, car.ID)
	if err != nil {
		t.Fatalf("ListActiveBookingsByCar: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active bookings, got %d", len(active))
	}
	for _, b := range active {
		if b.Status == BookingCancelled {
			t.Fatalf("cancelled booking leaked into active listing")
		}
	}

	// date fields survive the round trip as plain calendar days
	if active[0].StartDate.IsZero() {
		t.Fatalf("start date lost in round trip")
	}
}

func TestGormStoreUpdateBookingStatus(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	car := &Car{
		ID: uuid.New(), HostID: uuid.New(),
		Make: "Kia", Model: "Rio", Year: 2018, Price: 40,
		Location: "Reno, NV", Availability: true,
	}
	if _, err := store.CreateCar(ctx, car); err != nil {
		t.Fatalf("CreateCar: %v", err)
	}
	b := &Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CarID:     car.ID,
		StartDate: NewDate(2024, time.July, 1),
		EndDate:   NewDate(2024, time.July, 2),
		Status:    BookingConfirmed,
	}
	if _, err := store.CreateBooking(ctx, b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	updated, err := store.UpdateBookingStatus(ctx, b.ID, BookingCompleted)
	if err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if updated.Status != BookingCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}

	reloaded, err := store.GetBookingByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBookingByID: %v", err)
	}
	if reloaded.Status != BookingCompleted {
		t.Fatalf("status not persisted, got %s", reloaded.Status)
	}

	if _, err := store.UpdateBookingStatus(ctx, uuid.New(), BookingCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormStoreAdmitBookingRollsBack(t *testing.T) {
	store := openTestDB(t)
	ctx := context.Background()

	car := &Car{
		ID: uuid.New(), HostID: uuid.New(),
		Make: "Mazda", Model: "3", Year: 2022, Price: 80,
		Location: "Seattle, WA", Availability: true,
	}
	if _, err := store.CreateCar(ctx, car); err != nil {
		t.Fatalf("CreateCar: %v", err)
	}

	bookingID := uuid.New()
	wantErr := errors.New("boom")
	err := store.AdmitBooking(ctx, car.ID, func(tx Store) error {
		b := &Booking{
			ID:        bookingID,
			UserID:    uuid.New(),
			CarID:     car.ID,
			StartDate: NewDate(2024, time.August, 1),
			EndDate:   NewDate(2024, time.August, 2),
			Status:    BookingConfirmed,
		}
		if _, err := tx.Bookings().CreateBooking(ctx, b); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	if _, err := store.GetBookingByID(ctx, bookingID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("insert should have rolled back, got %v", err)
	}
}
