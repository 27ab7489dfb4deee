package store

import (
	"context"
	"errors"
	"sort"

	"github.com/rentwheels/rentwheels-server/internal/domain"
)

// CreateCar inserts a new car document.
func (s *Store) CreateCar(ctx context.Context, car *domain.Car) error {
	return s.Cars.Create(ctx, car.ID, car)
}

// GetCar retrieves a car by ID. Returns ErrNotFound if absent.
func (s *Store) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	return s.Cars.Get(ctx, id)
}

// ListCars returns every car in stable key order.
func (s *Store) ListCars(ctx context.Context) ([]domain.Car, error) {
	cars := make([]domain.Car, 0)
	for car, err := range s.Cars.List(ctx) {
		if err != nil {
			return nil, err
		}
		cars = append(cars, *car)
	}
	return cars, nil
}

// PageCars returns one page of cars with the pagination envelope.
func (s *Store) PageCars(ctx context.Context, params PageParams) (*PagedResult[domain.Car], error) {
	return s.Cars.Page(ctx, params)
}

// PatchCar merges the supplied fields into an existing car document.
func (s *Store) PatchCar(ctx context.Context, id string, fields map[string]any) (UpdateResult, error) {
	return s.Cars.Patch(ctx, id, fields)
}

// DeleteCar removes a car, reporting how many documents were deleted.
// Existing bookings keep their (now dangling) car reference.
func (s *Store) DeleteCar(ctx context.Context, id string) (int, error) {
	return s.Cars.Delete(ctx, id)
}

// ListCarsByOwner returns all cars listed under the given owner email.
func (s *Store) ListCarsByOwner(ctx context.Context, email string) ([]domain.Car, error) {
	return s.Cars.ListByIndex(ctx, "owner", normalizeEmail(email))
}

// ListLatestCars returns the n most recently posted cars, newest first.
func (s *Store) ListLatestCars(ctx context.Context, n int) ([]domain.Car, error) {
	cars, err := s.ListCars(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(cars, func(i, j int) bool {
		return cars[i].PostDate.After(cars[j].PostDate)
	})

	if len(cars) > n {
		cars = cars[:n]
	}
	return cars, nil
}

// ApplyBookingOutcome adjusts a car's availability flag (and, for
// confirmations, its booking counter) to reflect a booking status.
// A missing car is not an error here: the raw outcome reports zero
// matches, matching the weak car reference semantics of bookings.
func (s *Store) ApplyBookingOutcome(ctx context.Context, carID string, status domain.BookingStatus) (UpdateResult, error) {
	car, err := s.Cars.Get(ctx, carID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UpdateResult{}, nil
		}
		return UpdateResult{}, err
	}

	modified := 0
	if car.Available != status.CarAvailable() {
		car.Available = status.CarAvailable()
		modified = 1
	}
	if status.CountsBooking() {
		car.BookingCount++
		modified = 1
	}

	if modified == 0 {
		return UpdateResult{Matched: 1}, nil
	}

	if err := s.Cars.Update(ctx, carID, car); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: 1, Modified: 1}, nil
}
