package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/backend"
)

type HTTPError struct {
	Code    string `json:"error_code,omitempty"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// generic fallback when the server provided no message of its own
const genericMessage = "Ocurrió un error, inténtalo nuevamente"

// FromBackend maps the backend client's error taxonomy onto a JSON
// response: precondition failures are the caller's bad input, API errors are
// relayed with the server's message and status intact, and anything else is
// an internal error with the generic message.
func FromBackend(c *gin.Context, err error) {
	if backend.IsPrecondition(err) {
		BadRequest(c, "precondition_failed", err.Error())
		return
	}
	if ae, ok := backend.AsAPIError(err); ok {
		msg := ae.Message
		if msg == "" {
			msg = genericMessage
		}
		Write(c, ae.Status, ae.Code, msg)
		return
	}
	Internal(c, "backend_unreachable", genericMessage)
}
