package app

import (
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
	"github.com/yungbote/contactbook-backend/internal/services"
)

type Services struct {
	User    services.UserService
	Contact services.ContactService
	Address services.AddressService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	var recorder services.AuthRecorder
	if metrics != nil {
		recorder = metrics
	}

	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := services.NewTokenIssuer()

	contactService := services.NewContactService(log, reposet.Contact)
	return Services{
		User:    services.NewUserService(log, reposet.User, hasher, tokens, recorder),
		Contact: contactService,
		Address: services.NewAddressService(log, reposet.Address, contactService, reposet.Tx),
	}
}
