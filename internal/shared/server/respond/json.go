package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the success body for routes that report a message alongside
// their payload.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// JSON writes payload with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Message writes a 200 Envelope.
func Message(c *gin.Context, message string, data any) {
	OK(c, Envelope{Message: message, Data: data})
}
