package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/http/response"
	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
	"github.com/yungbote/contactbook-backend/internal/services"
)

const (
	DefaultTokenHeader = "X-API-TOKEN"
	// ContextUserKey holds the *domain.User on the gin context.
	ContextUserKey = "current_user"
)

type AuthMiddleware struct {
	log         *logger.Logger
	userService services.UserService
	header      string
}

func NewAuthMiddleware(log *logger.Logger, userService services.UserService, header string) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	if strings.TrimSpace(header) == "" {
		header = DefaultTokenHeader
	}
	return &AuthMiddleware{log: middlewareLogger, userService: userService, header: header}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(am.header))
		user, err := am.userService.Authenticate(dbctx.Context{Ctx: c.Request.Context()}, token)
		if err != nil {
			am.log.WithContext(c.Request.Context()).Debug("Rejected request", "path", c.FullPath(), "error", err)
			response.RespondError(c, err)
			return
		}
		ctx := ctxutil.WithCurrentUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}
