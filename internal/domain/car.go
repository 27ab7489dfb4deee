// Package domain defines the core business entities for the car-rental marketplace.
package domain

import "time"

// CarOwner identifies the user who listed a car.
type CarOwner struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Car is a rental listing. Availability is denormalized: it must be false
// exactly while a booking on this car is Confirmed, and true otherwise.
type Car struct {
	ID                 string    `json:"_id"`
	Owner              CarOwner  `json:"owner"`
	Model              string    `json:"model"`
	Brand              string    `json:"brand,omitempty"`
	DailyPrice         float64   `json:"dailyPrice"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	Description        string    `json:"description,omitempty"`
	Location           string    `json:"location,omitempty"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	Features           []string  `json:"features,omitempty"`
	Available          bool      `json:"available"`
	BookingCount       int       `json:"bookingCount"`
	PostDate           time.Time `json:"postDate"`
}
