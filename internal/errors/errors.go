package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error carries a user facing message, an optional cause and an HTTP status code.
type Error struct {
	Message string `json:"message"`
	Cause   error  `json:"-"`
	Code    int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports errors with the same code and message as equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(cause error, code int, message string) *Error {
	return &Error{Message: message, Cause: cause, Code: code}
}

func Newf(cause error, code int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Cause: cause, Code: code}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Err writes err as a JSON response.
func Err(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) {
		c.JSON(e.Code, e)
		return
	}
	c.JSON(http.StatusInternalServerError, &Error{Message: err.Error(), Code: http.StatusInternalServerError})
}
