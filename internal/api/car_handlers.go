package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentwheels/rentwheels-server/internal/domain"
	"github.com/rentwheels/rentwheels-server/internal/http/response"
)

// createCarRequest is the listing form payload. Server-controlled
// fields (_id, available, bookingCount, postDate) are ignored even if
// sent; the service forces them.
type createCarRequest struct {
	Owner              domain.CarOwner `json:"owner" validate:"required"`
	Model              string          `json:"model" validate:"required"`
	Brand              string          `json:"brand"`
	DailyPrice         float64         `json:"dailyPrice" validate:"gte=0"`
	RegistrationNumber string          `json:"registrationNumber"`
	Description        string          `json:"description"`
	Location           string          `json:"location"`
	ImageURL           string          `json:"imageUrl"`
	Features           []string        `json:"features"`
}

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	var req createCarRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger.Logger)
		return
	}
	if req.Owner.Email == "" {
		response.BadRequest(w, "owner email is required", s.logger.Logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	car := &domain.Car{
		Owner:              req.Owner,
		Model:              req.Model,
		Brand:              req.Brand,
		DailyPrice:         req.DailyPrice,
		RegistrationNumber: req.RegistrationNumber,
		Description:        req.Description,
		Location:           req.Location,
		ImageURL:           req.ImageURL,
		Features:           req.Features,
	}

	created, err := s.carService.CreateCar(r.Context(), car)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, created, s.logger.Logger)
}

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.carService.ListCars(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, cars, s.logger.Logger)
}

func (s *Server) handlePageCars(w http.ResponseWriter, r *http.Request) {
	page, err := s.carService.PageCars(r.Context(), parsePageParams(r))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, page, s.logger.Logger)
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	car, err := s.carService.GetCar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, car, s.logger.Logger)
}

func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.UnmarshalRead(r.Body, &fields); err != nil {
		response.BadRequest(w, "invalid request body", s.logger.Logger)
		return
	}

	result, err := s.carService.UpdateCar(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, result, s.logger.Logger)
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.carService.DeleteCar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, map[string]int{"deletedCount": deleted}, s.logger.Logger)
}

func (s *Server) handleLatestCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.carService.ListLatestCars(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, cars, s.logger.Logger)
}

// handleMyCars returns the caller's own listings. The email in the path
// must match the authenticated identity.
func (s *Server) handleMyCars(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := authorizeEmail(r.Context(), email); err != nil {
		s.handleAuthzError(w, err)
		return
	}

	cars, err := s.carService.ListCarsByOwner(r.Context(), email)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, cars, s.logger.Logger)
}
