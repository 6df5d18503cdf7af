package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/contactbook-backend/internal/http/handlers"
	httpMW "github.com/yungbote/contactbook-backend/internal/http/middleware"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	ContactHandler *httpH.ContactHandler
	AddressHandler *httpH.AddressHandler
	HealthHandler  *httpH.HealthHandler

	// Metrics is optional; nil disables instrumentation and /metrics.
	Metrics *observability.Metrics
	// TracingService, when set, names otelgin spans.
	TracingService  string
	CORSOrigins     []string
	TokenHeader     string
	MaxRequestBytes int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins, cfg.TokenHeader))
	r.Use(httpMW.LimitBody(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Users (public)
		if cfg.UserHandler != nil {
			api.POST("/users", cfg.UserHandler.Register)
			api.POST("/users/login", cfg.UserHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Users (current)
		if cfg.UserHandler != nil {
			protected.GET("/users/current", cfg.UserHandler.GetCurrent)
			protected.PATCH("/users/current", cfg.UserHandler.UpdateCurrent)
			protected.DELETE("/users/current", cfg.UserHandler.Logout)
		}

		// Contacts
		if cfg.ContactHandler != nil {
			protected.POST("/contacts", cfg.ContactHandler.Create)
			protected.GET("/contacts", cfg.ContactHandler.Search)
			protected.GET("/contacts/:contactId", cfg.ContactHandler.Get)
			protected.PUT("/contacts/:contactId", cfg.ContactHandler.Update)
			protected.DELETE("/contacts/:contactId", cfg.ContactHandler.Remove)
		}

		// Addresses
		if cfg.AddressHandler != nil {
			protected.POST("/contacts/:contactId/addresses", cfg.AddressHandler.Create)
			protected.GET("/contacts/:contactId/addresses", cfg.AddressHandler.List)
			protected.GET("/contacts/:contactId/addresses/:addressId", cfg.AddressHandler.Get)
			protected.PUT("/contacts/:contactId/addresses/:addressId", cfg.AddressHandler.Update)
			protected.DELETE("/contacts/:contactId/addresses/:addressId", cfg.AddressHandler.Remove)
		}
	}

	return r
}
