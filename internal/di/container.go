// Package di provides dependency injection configuration for the RentWheels server.
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/rentwheels/rentwheels-server/internal/auth"
	"github.com/rentwheels/rentwheels-server/internal/config"
	"github.com/rentwheels/rentwheels-server/internal/di/providers"
	"github.com/rentwheels/rentwheels-server/internal/logger"
	"github.com/rentwheels/rentwheels-server/internal/metrics"
	"github.com/rentwheels/rentwheels-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSigningKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metrics
	do.Provide(injector, providers.ProvideMetricsRegistry)
	do.Provide(injector, providers.ProvideMetricsCollector)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideCarService)
	do.Provide(injector, providers.ProvideBookingService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of the full graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.SigningKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*prometheus.Registry](injector)
	_ = do.MustInvoke[*metrics.Collector](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*service.CarService](injector)
	_ = do.MustInvoke[*service.BookingService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
