// Package service provides the business logic layer for the rental marketplace.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentwheels/rentwheels-server/internal/domain"
	"github.com/rentwheels/rentwheels-server/internal/id"
	"github.com/rentwheels/rentwheels-server/internal/metrics"
	"github.com/rentwheels/rentwheels-server/internal/store"
)

// latestCarCount is how many listings the landing page shows.
const latestCarCount = 6

// CarService orchestrates car listing operations.
type CarService struct {
	store     *store.Store
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewCarService creates a new car service. The collector may be nil.
func NewCarService(store *store.Store, logger *slog.Logger, collector *metrics.Collector) *CarService {
	return &CarService{
		store:     store,
		logger:    logger,
		collector: collector,
	}
}

// CreateCar lists a new car on the marketplace. Server-controlled fields
// are forced regardless of what the client sent: a fresh ID, available
// true, a zero booking count and the current post date.
func (s *CarService) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	carID, err := id.Generate("car")
	if err != nil {
		return nil, fmt.Errorf("generate car ID: %w", err)
	}

	car.ID = carID
	car.Available = true
	car.BookingCount = 0
	car.PostDate = time.Now().UTC()

	if err := s.store.CreateCar(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordCarListed()
	}
	s.logger.Info("car listed",
		"car_id", carID,
		"owner", car.Owner.Email,
		"model", car.Model,
	)

	return car, nil
}

// GetCar retrieves a single car. A malformed ID is rejected up front so
// it maps to a 400 rather than a 404.
func (s *CarService) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	if !id.Valid("car", carID) {
		return nil, store.ErrInvalidArgument.WithMessage("invalid car ID")
	}
	return s.store.GetCar(ctx, carID)
}

// ListCars returns every listing.
func (s *CarService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.store.ListCars(ctx)
}

// PageCars returns one page of listings with the totals envelope.
func (s *CarService) PageCars(ctx context.Context, params store.PageParams) (*store.PagedResult[domain.Car], error) {
	return s.store.PageCars(ctx, params)
}

// ListLatestCars returns the newest listings for the landing page.
func (s *CarService) ListLatestCars(ctx context.Context) ([]domain.Car, error) {
	return s.store.ListLatestCars(ctx, latestCarCount)
}

// ListCarsByOwner returns every car listed under the given owner email.
func (s *CarService) ListCarsByOwner(ctx context.Context, email string) ([]domain.Car, error) {
	return s.store.ListCarsByOwner(ctx, email)
}

// UpdateCar merges the supplied fields into an existing listing. The ID
// is immutable and silently dropped from the patch.
func (s *CarService) UpdateCar(ctx context.Context, carID string, fields map[string]any) (store.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, err
	}
	if !id.Valid("car", carID) {
		return store.UpdateResult{}, store.ErrInvalidArgument.WithMessage("invalid car ID")
	}

	result, err := s.store.PatchCar(ctx, carID, fields)
	if err != nil {
		return store.UpdateResult{}, err
	}

	s.logger.Info("car updated", "car_id", carID, "modified", result.Modified)
	return result, nil
}

// DeleteCar removes a listing, reporting how many documents were
// deleted. Existing bookings keep their denormalized car snapshot.
func (s *CarService) DeleteCar(ctx context.Context, carID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	deleted, err := s.store.DeleteCar(ctx, carID)
	if err != nil {
		return 0, fmt.Errorf("delete car: %w", err)
	}

	s.logger.Info("car deleted", "car_id", carID, "deleted", deleted)
	return deleted, nil
}
