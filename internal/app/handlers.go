package app

import (
	httpH "github.com/yungbote/contactbook-backend/internal/http/handlers"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	User    *httpH.UserHandler
	Contact *httpH.ContactHandler
	Address *httpH.AddressHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		User:    httpH.NewUserHandler(services.User),
		Contact: httpH.NewContactHandler(services.Contact),
		Address: httpH.NewAddressHandler(services.Address),
	}
}
