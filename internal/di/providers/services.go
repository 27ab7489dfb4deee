package providers

import (
	"github.com/samber/do/v2"

	"github.com/rentwheels/rentwheels-server/internal/logger"
	"github.com/rentwheels/rentwheels-server/internal/metrics"
	"github.com/rentwheels/rentwheels-server/internal/service"
)

// ProvideCarService provides the car listing service.
func ProvideCarService(i do.Injector) (*service.CarService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	collector := do.MustInvoke[*metrics.Collector](i)

	return service.NewCarService(storeHandle.Store, log.Logger, collector), nil
}

// ProvideBookingService provides the booking lifecycle service.
func ProvideBookingService(i do.Injector) (*service.BookingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	collector := do.MustInvoke[*metrics.Collector](i)

	return service.NewBookingService(storeHandle.Store, log.Logger, collector), nil
}
