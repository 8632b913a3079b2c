package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

// Envelope represents the common response contract. A response is either a
// success envelope (Success true, Data populated) or an error envelope
// (Error/Message populated), never both.
type Envelope struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Count   *int                   `json:"count,omitempty"`
	Summary map[string]interface{} `json:"summary,omitempty"`
	Filters interface{}            `json:"filters,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// JSON sends a plain success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Report sends a success envelope carrying report rows, a row count,
// report-specific summary fields and the echoed filter values.
func Report(c *gin.Context, data interface{}, count int, summary map[string]interface{}, filters interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Count:   &count,
		Summary: summary,
		Filters: filters,
	})
}

// Error sends an error envelope converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{Error: appErr.Code, Message: appErr.Error()})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
