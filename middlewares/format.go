package middlewares

import (
	"errors"
	"net/http"

	"HospitalMgmt/logger"
	"HospitalMgmt/mailer"
	"HospitalMgmt/repositories"
	"HospitalMgmt/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	entry := logger.Log.WithFields(map[string]interface{}{
		"status": status,
		"path":   c.Request.URL.Path,
	})
	if id, ok := c.Get(requestIDKey); ok {
		entry = entry.WithField("request_id", id)
	}
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error(message)
	} else {
		entry.WithError(err).Info(message)
	}
	c.JSON(status, gin.H{"error": message})
}

// StatusFor maps a service or store error to its HTTP status code.
func StatusFor(err error) int {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields),
		errors.Is(err, repositories.ErrInvalidReference),
		errors.Is(err, repositories.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrConflict),
		errors.Is(err, repositories.ErrInUse):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrRetryable),
		errors.Is(err, mailer.ErrDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// RespondError writes err with the status StatusFor assigns. Field level
// validation failures are listed under "fields".
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)

	var fields validation.Errors
	if errors.As(err, &fields) {
		c.JSON(status, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		message = "internal server error"
	case http.StatusServiceUnavailable:
		if errors.Is(err, repositories.ErrRetryable) {
			message = "please retry"
		}
	}
	HttpError(c, message, status, err)
}
