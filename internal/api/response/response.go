// Package response renders the wire envelope every endpoint answers with:
// a boolean status flag, a human-readable message and an optional data
// payload. The shape is a compatibility contract with existing clients.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"weatherapp/server/internal/api/apperror"
)

type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func NewEnvelope(status bool, message string, data any) Envelope {
	return Envelope{
		Status:  status,
		Message: message,
		Data:    data,
	}
}

// OK returns a success envelope with a data payload.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, NewEnvelope(true, message, data))
}

// OKMessage returns a success envelope with no data payload.
func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, NewEnvelope(true, message, nil))
}

// Fail returns a failure envelope with an explicit status code.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, NewEnvelope(false, message, nil))
}

// Error translates an application error into the failure envelope, using the
// error's own status mapping. Unknown errors collapse to a generic 500.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	Fail(c, appErr.StatusCode(), appErr.Message)
}

// AbortUnauthorized writes a 401 envelope and stops the handler chain.
// Used by the identity middleware so no handler runs unauthenticated.
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, NewEnvelope(false, message, nil))
}
