package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/http/response"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
)

// pathID parses a positive path id. Anything else yields 0, which the
// request validators reject on the matching field.
func pathID(c *gin.Context, name string) uint {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// queryInt reads an optional integer query parameter, falling back to def
// when it is absent or blank.
func queryInt(c *gin.Context, name string, def int) (int, *apierr.FieldError) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apierr.FieldError{Field: name, Message: name + " must be a number"}
	}
	return n, nil
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, apierr.BadRequest("request body too large"))
			return false
		}
		response.RespondError(c, apierr.BadRequest(err.Error()))
		return false
	}
	return true
}

func requestDB(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

func currentUser(c *gin.Context) *types.User {
	return ctxutil.CurrentUser(c.Request.Context())
}
