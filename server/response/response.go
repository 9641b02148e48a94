package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/lostconnect/backend/errors"
)

// JSON writes the standard envelope: {"success": bool, ...payload}.
// Fields in data are spread at the top level next to success/message.
func JSON(c *gin.Context, message string, status int, data gin.H, err error) {
	body := gin.H{
		"success": status < http.StatusBadRequest,
	}
	if message != "" {
		body["message"] = message
	}
	for key, value := range data {
		body[key] = value
	}
	if err != nil {
		if e, ok := err.(*errs.Error); ok {
			body["error"] = e.Message
		} else {
			body["error"] = err.Error()
		}
	}
	c.JSON(status, body)
}
