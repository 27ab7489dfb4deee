// Package api provides the HTTP API server and handlers for the RentWheels marketplace.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rentwheels/rentwheels-server/internal/auth"
	"github.com/rentwheels/rentwheels-server/internal/config"
	"github.com/rentwheels/rentwheels-server/internal/http/response"
	"github.com/rentwheels/rentwheels-server/internal/logger"
	"github.com/rentwheels/rentwheels-server/internal/metrics"
	"github.com/rentwheels/rentwheels-server/internal/service"
	"github.com/rentwheels/rentwheels-server/internal/store"
	"github.com/rentwheels/rentwheels-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          *store.Store
	carService     *service.CarService
	bookingService *service.BookingService
	tokenService   *auth.TokenService
	collector      *metrics.Collector
	gatherer       prometheus.Gatherer
	loginLimiter   *RateLimiter
	validator      *validation.Validator
	config         *config.Config
	router         *chi.Mux
	logger         *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store *store.Store,
	carService *service.CarService,
	bookingService *service.BookingService,
	tokenService *auth.TokenService,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
	cfg *config.Config,
	log *logger.Logger,
) *Server {
	s := &Server{
		store:          store,
		carService:     carService,
		bookingService: bookingService,
		tokenService:   tokenService,
		collector:      collector,
		gatherer:       gatherer,
		loginLimiter:   NewRateLimiter(20, 1, 5),
		validator:      validation.New(),
		config:         cfg,
		router:         chi.NewRouter(),
		logger:         log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// Credentials must be allowed for the session cookie to travel.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.config.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if s.collector != nil {
		s.router.Use(s.collector.Middleware)
	}
}

// setupRoutes configures all HTTP routes. Paths are flat, matching the
// frontend the marketplace was built against.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealthCheck)
	s.router.Get("/metrics", metrics.Handler(s.gatherer).ServeHTTP)

	// Session endpoints.
	s.router.With(RateLimitMiddleware(s.loginLimiter, s.logger)).
		Post("/jwt", s.handleIssueToken)
	s.router.Post("/logout", s.handleLogout)

	// Cars.
	s.router.Post("/add-car", s.handleCreateCar)
	s.router.Get("/cars", s.handleListCars)
	s.router.Get("/cars/page", s.handlePageCars)
	s.router.Get("/cars/{id}", s.handleGetCar)
	s.router.Patch("/cars/{id}", s.handleUpdateCar)
	s.router.Delete("/cars/{id}", s.handleDeleteCar)
	s.router.Get("/latest", s.handleLatestCars)
	s.router.With(s.requireAuth).Get("/my-cars/{email}", s.handleMyCars)

	// Bookings.
	s.router.Get("/bookings", s.handleListBookings)
	s.router.With(s.requireAuth).Post("/bookings", s.handleCreateBooking)
	s.router.With(s.requireAuth).Get("/my-bookings/{email}", s.handleMyBookings)
	s.router.With(s.requireAuth).Put("/bookings/{id}", s.handleUpdateBookingDates)
	s.router.Delete("/bookings/{id}", s.handleDeleteBooking)
	s.router.With(s.requireAuth).Get("/booking/request", s.handleBookingRequests)
	s.router.With(s.requireAuth).Get("/booking/request/status", s.handleBookingRequestsByStatus)
	s.router.With(s.requireAuth).Patch("/booking/{id}", s.handleUpdateBookingStatus)
}

// handleRoot answers the bare liveness probe the frontend pings.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	response.Message(w, "RentWheels server is running", s.logger.Logger)
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger.Logger)
}
