package store

import (
	"context"
	"errors"
	"time"

	"github.com/rentwheels/rentwheels-server/internal/domain"
)

// CreateBooking inserts a new booking document.
func (s *Store) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	return s.Bookings.Create(ctx, booking.ID, booking)
}

// GetBooking retrieves a booking by ID. Returns ErrNotFound if absent.
func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.Bookings.Get(ctx, id)
}

// ListBookings returns every booking in stable key order.
func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for b, err := range s.Bookings.List(ctx) {
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

// ListBookingsByHirer returns all bookings created by the given hirer email.
func (s *Store) ListBookingsByHirer(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.Bookings.ListByIndex(ctx, "hirer", normalizeEmail(email))
}

// ListBookingsByOwner returns all bookings whose denormalized owner email
// matches. When status is non-nil the result is additionally filtered to
// bookings in exactly that status.
func (s *Store) ListBookingsByOwner(ctx context.Context, email string, status *domain.BookingStatus) ([]domain.Booking, error) {
	bookings, err := s.Bookings.ListByIndex(ctx, "owner", normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if status == nil {
		return bookings, nil
	}

	filtered := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == *status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// UpdateBookingDates rewrites a booking's date range. Returns ErrNotFound
// when the booking is absent; a write that changes nothing reports
// Modified 0 and is left to the caller to classify.
func (s *Store) UpdateBookingDates(ctx context.Context, id string, bookingDate, endDate time.Time) (UpdateResult, error) {
	booking, err := s.Bookings.Get(ctx, id)
	if err != nil {
		return UpdateResult{}, err
	}

	if booking.BookingDate.Equal(bookingDate) && booking.EndDate.Equal(endDate) {
		return UpdateResult{Matched: 1}, nil
	}

	booking.BookingDate = bookingDate
	booking.EndDate = endDate

	if err := s.Bookings.Update(ctx, id, booking); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: 1, Modified: 1}, nil
}

// UpdateBookingStatus rewrites a booking's lifecycle status. A missing
// booking is reported as a zero-match outcome rather than an error so the
// caller can fold it into a combined dual-write result.
func (s *Store) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (UpdateResult, error) {
	booking, err := s.Bookings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UpdateResult{}, nil
		}
		return UpdateResult{}, err
	}

	if booking.Status == status {
		return UpdateResult{Matched: 1}, nil
	}

	booking.Status = status
	if err := s.Bookings.Update(ctx, id, booking); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: 1, Modified: 1}, nil
}

// DeleteBooking removes a booking, reporting how many documents were
// deleted. The referenced car is never touched.
func (s *Store) DeleteBooking(ctx context.Context, id string) (int, error) {
	return s.Bookings.Delete(ctx, id)
}
