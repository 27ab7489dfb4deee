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

// WriteOutcome reports one leg of the dual write in Mongo-style counts.
type WriteOutcome struct {
	Matched  int    `json:"matchedCount"`
	Modified int    `json:"modifiedCount"`
	Error    string `json:"error,omitempty"`
}

// StatusUpdateResult combines both legs of a status transition. The car
// is written first; a booking-leg failure after a successful car write
// is reported here instead of failing the request.
type StatusUpdateResult struct {
	Car     WriteOutcome `json:"car"`
	Booking WriteOutcome `json:"booking"`
}

// BookingService manages the booking lifecycle: Pending at creation,
// then Confirmed or Canceled through UpdateStatus only.
type BookingService struct {
	store     *store.Store
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewBookingService creates a new booking service. The collector may be nil.
func NewBookingService(store *store.Store, logger *slog.Logger, collector *metrics.Collector) *BookingService {
	return &BookingService{
		store:     store,
		logger:    logger,
		collector: collector,
	}
}

// CreateBooking stores a new booking request. The status is forced to
// Pending regardless of what the client sent; the rest of the payload
// (including the denormalized car and owner snapshot) is trusted as-is.
func (s *BookingService) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bookingID, err := id.Generate("bkg")
	if err != nil {
		return nil, fmt.Errorf("generate booking ID: %w", err)
	}

	booking.ID = bookingID
	booking.Status = domain.StatusPending

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordBookingCreated()
	}
	s.logger.Info("booking created",
		"booking_id", bookingID,
		"car_id", booking.CarID,
		"hirer", booking.Hirer.Email,
	)

	return booking, nil
}

// GetBooking retrieves a single booking.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.store.GetBooking(ctx, bookingID)
}

// ListBookings returns every booking.
func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.store.ListBookings(ctx)
}

// ListBookingsByHirer returns all bookings placed by the given email.
func (s *BookingService) ListBookingsByHirer(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.store.ListBookingsByHirer(ctx, email)
}

// ListBookingsByOwner returns bookings against the owner's cars. When
// statusFilter is non-empty it must name a known status, otherwise the
// call fails with InvalidArgument.
func (s *BookingService) ListBookingsByOwner(ctx context.Context, email, statusFilter string) ([]domain.Booking, error) {
	var status *domain.BookingStatus
	if statusFilter != "" {
		parsed, err := domain.ParseBookingStatus(statusFilter)
		if err != nil {
			return nil, store.ErrInvalidArgument.WithMessage(err.Error())
		}
		status = &parsed
	}

	return s.store.ListBookingsByOwner(ctx, email, status)
}

// UpdateDates rewrites a booking's date range. A booking that is absent
// or whose dates already match reports NotFound, matching the
// modified-nothing contract the frontend relies on.
func (s *BookingService) UpdateDates(ctx context.Context, bookingID string, bookingDate, endDate time.Time) (store.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, err
	}

	result, err := s.store.UpdateBookingDates(ctx, bookingID, bookingDate, endDate)
	if err != nil {
		return store.UpdateResult{}, err
	}
	if result.Modified == 0 {
		return store.UpdateResult{}, store.ErrNotFound.WithMessage("booking not found or dates unchanged")
	}

	s.logger.Info("booking dates updated", "booking_id", bookingID)
	return result, nil
}

// DeleteBooking removes a booking. Deleting an absent booking is not an
// error; the count tells the caller what happened. The car's
// availability is deliberately left alone.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	deleted, err := s.store.DeleteBooking(ctx, bookingID)
	if err != nil {
		return 0, fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("booking deleted", "booking_id", bookingID, "deleted", deleted)
	return deleted, nil
}

// UpdateStatus transitions a booking and synchronizes the car's
// denormalized availability in two independent writes, car first. There
// is no transaction across the two documents and no rollback: if the
// booking write fails after the car write succeeded, the error is
// folded into the combined result and the handler reports partial
// success. An unknown status is rejected before either write.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, carID, statusName string) (*StatusUpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	status, err := domain.ParseBookingStatus(statusName)
	if err != nil {
		return nil, store.ErrInvalidArgument.WithMessage(err.Error())
	}

	result := &StatusUpdateResult{}

	carOutcome, err := s.store.ApplyBookingOutcome(ctx, carID, status)
	if err != nil {
		return nil, fmt.Errorf("update car availability: %w", err)
	}
	result.Car = WriteOutcome{Matched: carOutcome.Matched, Modified: carOutcome.Modified}

	bookingOutcome, err := s.store.UpdateBookingStatus(ctx, bookingID, status)
	if err != nil {
		// The car write already landed; report the failed leg instead
		// of discarding the partial result.
		s.logger.Error("booking status write failed after car update",
			"booking_id", bookingID,
			"car_id", carID,
			"status", status,
			"error", err,
		)
		result.Booking = WriteOutcome{Error: err.Error()}
		return result, nil
	}
	result.Booking = WriteOutcome{Matched: bookingOutcome.Matched, Modified: bookingOutcome.Modified}

	if s.collector != nil {
		s.collector.RecordStatusChange(string(status))
	}
	s.logger.Info("booking status updated",
		"booking_id", bookingID,
		"car_id", carID,
		"status", status,
	)

	return result, nil
}
