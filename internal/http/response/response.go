package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
)

// ErrorEnvelope is every error body. For validation failures Errors holds
// the JSON encoding of the field list.
type ErrorEnvelope struct {
	Errors string `json:"errors"`
}

type DataEnvelope struct {
	Data any `json:"data"`
}

type PageEnvelope struct {
	Data   any `json:"data"`
	Paging any `json:"paging"`
}

// RespondError aborts the chain with the status and body for err. Internal
// causes are attached to the gin context for the request logger and never
// reach the client.
func RespondError(c *gin.Context, err error) {
	e := apierr.From(err)
	if e == nil {
		e = apierr.Internal(nil)
	}
	if e.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(e.Status, ErrorEnvelope{Errors: errorText(e)})
}

func errorText(e *apierr.Error) string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	raw, err := json.Marshal(e.Fields)
	if err != nil {
		return e.Message
	}
	return string(raw)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, DataEnvelope{Data: payload})
}

func RespondPage(c *gin.Context, data any, paging any) {
	c.JSON(http.StatusOK, PageEnvelope{Data: data, Paging: paging})
}

// RespondMessage writes a bare {success,message} body without the data wrapper.
func RespondMessage(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
