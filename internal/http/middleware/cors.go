package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultAllowOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the given origins, falling back to local dev servers.
// tokenHeader is added to the allowed request headers.
func CORS(allowOrigins []string, tokenHeader string) gin.HandlerFunc {
	if len(allowOrigins) == 0 {
		allowOrigins = defaultAllowOrigins
	}
	if tokenHeader == "" {
		tokenHeader = DefaultTokenHeader
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{tokenHeader, "Content-Type", "X-Requested-With", headerRequestID, headerTraceID},
		ExposeHeaders:    []string{headerRequestID, headerTraceID},
		AllowCredentials: true,
	})
}
