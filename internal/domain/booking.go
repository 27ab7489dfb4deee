package domain

import (
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking request.
// The set is closed: anything outside it is rejected at the boundary
// rather than silently treated as an availability no-op.
type BookingStatus string

// Booking lifecycle states. Pending is the only initial state; transitions
// to Confirmed or Canceled happen exclusively through the status update
// operation.
const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCanceled  BookingStatus = "Canceled"
)

// ParseBookingStatus converts a raw status string into a BookingStatus.
// Matching is exact; unrecognized values are an error.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCanceled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// CarAvailable returns the car availability implied by this status:
// false while Confirmed, true for Pending and Canceled.
func (s BookingStatus) CarAvailable() bool {
	return s != StatusConfirmed
}

// CountsBooking reports whether a transition into this status increments
// the car's booking counter. Only confirmations count.
func (s BookingStatus) CountsBooking() bool {
	return s == StatusConfirmed
}

// Party identifies one side of a booking (hirer or owner).
type Party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Booking is a rental request against a car. CarID is a weak reference:
// the car may be deleted while bookings referencing it remain. Owner is
// denormalized from the car so owner-side queries need no join.
type Booking struct {
	ID          string        `json:"_id"`
	CarID       string        `json:"carId"`
	CarModel    string        `json:"carModel,omitempty"`
	Hirer       Party         `json:"hirer"`
	Owner       Party         `json:"owner"`
	BookingDate time.Time     `json:"bookingDate"`
	EndDate     time.Time     `json:"endDate"`
	Status      BookingStatus `json:"bookingStatus"`
}
