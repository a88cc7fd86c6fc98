package models

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is the map-backed Store implementation used by tests and the
// demo configuration. Admission atomicity comes from a per-car mutex instead
// of a database lock.
type MemoryStore struct {
	mu       sync.RWMutex
	cars     map[uuid.UUID]*Car
	bookings map[uuid.UUID]*Booking
	users    map[uuid.UUID]*User

	admitMu    sync.Mutex
	admitLocks map[uuid.UUID]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cars:       make(map[uuid.UUID]*Car),
		bookings:   make(map[uuid.UUID]*Booking),
		users:      make(map[uuid.UUID]*User),
		admitLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *MemoryStore) Cars() CarRepo { return s }

func (s *MemoryStore) Bookings() BookingRepo { return s }

func (s *MemoryStore) Users() UserRepo { return s }

func (s *MemoryStore) carLock(carID uuid.UUID) *sync.Mutex {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()
	l, ok := s.admitLocks[carID]
	if !ok {
		l = &sync.Mutex{}
		s.admitLocks[carID] = l
	}
	return l
}

func (s *MemoryStore) AdmitBooking(ctx context.Context, carID uuid.UUID, fn func(tx Store) error) error {
	l := s.carLock(carID)
	l.Lock()
	defer l.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return fn(s)
}

func (s *MemoryStore) CreateCar(ctx context.Context, car *Car) (*Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *car
	s.cars[car.ID] = &cp
	return car, nil
}

func (s *MemoryStore) GetCarByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	car, ok := s.cars[id]
	if !ok {
		return nil, fmt.Errorf("%w: car %s", ErrNotFound, id)
	}
	cp := *car
	return &cp, nil
}

func (s *MemoryStore) ListAvailableCars(ctx context.Context) ([]*Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var cars []*Car
	for _, car := range s.cars {
		if car.Availability {
			cp := *car
			cars = append(cars, &cp)
		}
	}
	sortCarsNewestFirst(cars)
	return cars, nil
}

func (s *MemoryStore) SearchCarsByLocation(ctx context.Context, location string) ([]*Car, error) {
	needle := strings.ToLower(location)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var cars []*Car
	for _, car := range s.cars {
		if !car.Availability {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(car.Location), needle) {
			continue
		}
		cp := *car
		cars = append(cars, &cp)
	}
	sortCarsNewestFirst(cars)
	return cars, nil
}

func (s *MemoryStore) ListCarsByHost(ctx context.Context, hostID uuid.UUID) ([]*Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var cars []*Car
	for _, car := range s.cars {
		if car.HostID == hostID {
			cp := *car
			cars = append(cars, &cp)
		}
	}
	sortCarsNewestFirst(cars)
	return cars, nil
}

func (s *MemoryStore) UpdateCar(ctx context.Context, car *Car) (*Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cars[car.ID]; !ok {
		return nil, fmt.Errorf("%w: car %s", ErrNotFound, car.ID)
	}
	cp := *car
	s.cars[car.ID] = &cp
	return car, nil
}

func (s *MemoryStore) DeleteCar(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cars[id]; !ok {
		return fmt.Errorf("%w: car %s", ErrNotFound, id)
	}
	delete(s.cars, id)
	return nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *booking
	s.bookings[booking.ID] = &cp
	return booking, nil
}

func (s *MemoryStore) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	cp := *booking
	return &cp, nil
}

func (s *MemoryStore) ListActiveBookingsByCar(ctx context.Context, carID uuid.UUID) ([]*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []*Booking
	for _, b := range s.bookings {
		if b.CarID == carID && b.Status.Active() {
			cp := *b
			bookings = append(bookings, &cp)
		}
	}
	return bookings, nil
}

func (s *MemoryStore) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]*BookingWithCar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*BookingWithCar
	for _, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		item := &BookingWithCar{Booking: *b}
		if car, ok := s.cars[b.CarID]; ok {
			item.Car = car.Summary()
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) ListBookingsByCar(ctx context.Context, carID uuid.UUID) ([]*BookingWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*BookingWithUser
	for _, b := range s.bookings {
		if b.CarID != carID {
			continue
		}
		item := &BookingWithUser{Booking: *b}
		if user, ok := s.users[b.UserID]; ok {
			item.User = &UserSummary{Name: user.Name, Email: user.Email}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (s *MemoryStore) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status BookingStatus) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	booking.Status = status
	cp := *booking
	return &cp, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, fmt.Errorf("%w: email %s already registered", ErrConflict, user.Email)
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return user, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
}

func sortCarsNewestFirst(cars []*Car) {
	sort.Slice(cars, func(i, j int) bool {
		return cars[i].CreatedAt.After(cars[j].CreatedAt)
	})
}
