package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/http"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	var tracingService string
	if cfg.Observability.OTelEnabled {
		tracingService = cfg.Observability.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:             log.With("component", "HTTP"),
		AuthMiddleware:  middleware.Auth,
		UserHandler:     handlers.User,
		ContactHandler:  handlers.Contact,
		AddressHandler:  handlers.Address,
		HealthHandler:   handlers.Health,
		Metrics:         metrics,
		TracingService:  tracingService,
		CORSOrigins:     cfg.CORS.AllowOrigins,
		TokenHeader:     cfg.Auth.TokenHeader,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
	})
}
