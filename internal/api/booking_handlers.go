package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentwheels/rentwheels-server/internal/domain"
	"github.com/rentwheels/rentwheels-server/internal/http/response"
)

// createBookingRequest carries the booking form plus the denormalized
// car and owner snapshot the frontend copies in. Status is not
// accepted here: every booking starts Pending.
type createBookingRequest struct {
	CarID       string       `json:"carId" validate:"required"`
	CarModel    string       `json:"carModel"`
	Hirer       domain.Party `json:"hirer" validate:"required"`
	Owner       domain.Party `json:"owner"`
	BookingDate string       `json:"bookingDate" validate:"required"`
	EndDate     string       `json:"endDate" validate:"required"`
}

// updateDatesRequest is the PUT /bookings/{id} payload.
type updateDatesRequest struct {
	BookingDate string `json:"bookingDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger.Logger)
		return
	}
	if req.Hirer.Email == "" {
		response.BadRequest(w, "hirer email is required", s.logger.Logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	bookingDate, err := parseDate(req.BookingDate)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	booking := &domain.Booking{
		CarID:       req.CarID,
		CarModel:    req.CarModel,
		Hirer:       req.Hirer,
		Owner:       req.Owner,
		BookingDate: bookingDate,
		EndDate:     endDate,
	}

	created, err := s.bookingService.CreateBooking(r.Context(), booking)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Created(w, created, s.logger.Logger)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookingService.ListBookings(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, bookings, s.logger.Logger)
}

// handleMyBookings returns the caller's own bookings. The email in the
// path must match the authenticated identity.
func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := authorizeEmail(r.Context(), email); err != nil {
		s.handleAuthzError(w, err)
		return
	}

	bookings, err := s.bookingService.ListBookingsByHirer(r.Context(), email)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, bookings, s.logger.Logger)
}

func (s *Server) handleUpdateBookingDates(w http.ResponseWriter, r *http.Request) {
	var req updateDatesRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger.Logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	bookingDate, err := parseDate(req.BookingDate)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	result, err := s.bookingService.UpdateDates(r.Context(), chi.URLParam(r, "id"), bookingDate, endDate)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, result, s.logger.Logger)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.bookingService.DeleteBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, map[string]int{"deletedCount": deleted}, s.logger.Logger)
}

// handleBookingRequests lists bookings made against the caller's cars.
func (s *Server) handleBookingRequests(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := authorizeEmail(r.Context(), email); err != nil {
		s.handleAuthzError(w, err)
		return
	}

	bookings, err := s.bookingService.ListBookingsByOwner(r.Context(), email, "")
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, bookings, s.logger.Logger)
}

// handleBookingRequestsByStatus narrows the incoming-request view to a
// single lifecycle status.
func (s *Server) handleBookingRequestsByStatus(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := authorizeEmail(r.Context(), email); err != nil {
		s.handleAuthzError(w, err)
		return
	}

	bookings, err := s.bookingService.ListBookingsByOwner(r.Context(), email, r.URL.Query().Get("status"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, bookings, s.logger.Logger)
}

// handleUpdateBookingStatus transitions a booking and syncs the car's
// availability. Partial failure of the second write is reported in the
// body, not the status code.
func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	status := r.URL.Query().Get("status")
	carID := r.URL.Query().Get("carId")

	result, err := s.bookingService.UpdateStatus(r.Context(), bookingID, carID, status)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, result, s.logger.Logger)
}
