package errors

import (
	"errors"
	"fmt"
	"net/http"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is a domain error carrying the HTTP status it should surface as.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// New creates an Error with the given message and HTTP status code.
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrConflict            = New("duplicate record", http.StatusConflict)
	InActiveUserError      = errors.New("user inactive")
)

// GetUniqueContraintError maps a storage unique-constraint violation to a
// 409 the API can return.
func GetUniqueContraintError(err error) *Error {
	return New(err.Error(), http.StatusConflict)
}

// ErrorHandler is the handler passed to the rate limiter for throttled requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "too many requests, try again later",
	})
	c.Abort()
}
