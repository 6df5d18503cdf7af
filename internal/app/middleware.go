package app

import (
	httpMW "github.com/yungbote/contactbook-backend/internal/http/middleware"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.User, cfg.Auth.TokenHeader),
	}
}
