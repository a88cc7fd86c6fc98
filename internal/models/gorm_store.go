package models

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the relational Store implementation. One struct serves all
// three repositories; AdmitBooking hands out a copy bound to the transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Cars() CarRepo { return s }

func (s *GormStore) Bookings() BookingRepo { return s }

func (s *GormStore) Users() UserRepo { return s }

// AdmitBooking wraps fn in a transaction holding a per-car advisory lock, so
// two concurrent admissions for the same car serialize and the second one sees
// the first one's booking. On non-Postgres dialects (the sqlite test store)
// the transaction itself provides the write serialization.
func (s *GormStore) AdmitBooking(ctx context.Context, carID uuid.UUID, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", carLockKey(carID)).Error; err != nil {
				return fmt.Errorf("%w: acquire admission lock: %v", ErrInternal, err)
			}
		}
		return fn(&GormStore{db: tx})
	})
}

// carLockKey folds a car id into the signed 64-bit keyspace that
// pg_advisory_xact_lock expects.
func carLockKey(id uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(id[:])
	return int64(h.Sum64())
}

func (s *GormStore) CreateCar(ctx context.Context, car *Car) (*Car, error) {
	if err := s.db.WithContext(ctx).Create(car).Error; err != nil {
		return nil, fmt.Errorf("%w: create car: %v", ErrInternal, err)
	}
	return car, nil
}

func (s *GormStore) GetCarByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	var car Car
	err := s.db.WithContext(ctx).First(&car, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: car %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get car: %v", ErrInternal, err)
	}
	return &car, nil
}

func (s *GormStore) ListAvailableCars(ctx context.Context) ([]*Car, error) {
	var cars []*Car
	err := s.db.WithContext(ctx).
		Where("availability = ?", true).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list cars: %v", ErrInternal, err)
	}
	return cars, nil
}

func (s *GormStore) SearchCarsByLocation(ctx context.Context, location string) ([]*Car, error) {
	var cars []*Car
	q := s.db.WithContext(ctx).Where("availability = ?", true)
	if location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if err := q.Order("created_at DESC").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("%w: search cars: %v", ErrInternal, err)
	}
	return cars, nil
}

func (s *GormStore) ListCarsByHost(ctx context.Context, hostID uuid.UUID) ([]*Car, error) {
	var cars []*Car
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list host cars: %v", ErrInternal, err)
	}
	return cars, nil
}

func (s *GormStore) UpdateCar(ctx context.Context, car *Car) (*Car, error) {
	if err := s.db.WithContext(ctx).Save(car).Error; err != nil {
		return nil, fmt.Errorf("%w: update car: %v", ErrInternal, err)
	}
	return car, nil
}

func (s *GormStore) DeleteCar(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Car{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("%w: delete car: %v", ErrInternal, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: car %s", ErrNotFound, id)
	}
	return nil
}

func (s *GormStore) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return nil, fmt.Errorf("%w: create booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (s *GormStore) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get booking: %v", ErrInternal, err)
	}
	return &booking, nil
}

func (s *GormStore) ListActiveBookingsByCar(ctx context.Context, carID uuid.UUID) ([]*Booking, error) {
	var bookings []*Booking
	err := s.db.WithContext(ctx).
		Where("car_id = ? AND status <> ?", carID, BookingCancelled).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list active bookings: %v", ErrInternal, err)
	}
	return bookings, nil
}

func (s *GormStore) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*BookingWithCar, error) {
	var bookings []*Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list user bookings: %v", ErrInternal, err)
	}

	summaries := make(map[uuid.UUID]*CarSummary)
	out := make([]*BookingWithCar, 0, len(bookings))
	for _, b := range bookings {
		summary, ok := summaries[b.CarID]
		if !ok {
			var car Car
			if err := s.db.WithContext(ctx).First(&car, "id = ?", b.CarID).Error; err == nil {
				summary = car.Summary()
			}
			summaries[b.CarID] = summary
		}
		out = append(out, &BookingWithCar{Booking: *b, Car: summary})
	}
	return out, nil
}

func (s *GormStore) ListBookingsByCar(ctx context.Context, carID uuid.UUID) ([]*BookingWithUser, error) {
	var bookings []*Booking
	err := s.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("start_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list car bookings: %v", ErrInternal, err)
	}

	out := make([]*BookingWithUser, 0, len(bookings))
	for _, b := range bookings {
		var summary *UserSummary
		var user User
		if err := s.db.WithContext(ctx).First(&user, "id = ?", b.UserID).Error; err == nil {
			summary = &UserSummary{Name: user.Name, Email: user.Email}
		}
		out = append(out, &BookingWithUser{Booking: *b, User: summary})
	}
	return out, nil
}

func (s *GormStore) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error) {
	booking, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).
		Model(booking).
		Update("status", status).Error
	if err != nil {
		return nil, fmt.Errorf("%w: update booking status: %v", ErrInternal, err)
	}
	booking.Status = status
	return booking, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, user.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrInternal, err)
	}
	return user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	return &user, nil
}
