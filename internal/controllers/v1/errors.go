package v1

import (
	"errors"
	"net/http"

	"github.com/caixinhas/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errInvalidCredentials = errors.New("the e-mail address or the password is incorrect")
	errPasswordTooShort   = errors.New("the password must be at least 8 characters long")
	errEmailNotSet        = errors.New("the email parameter must be set")
	errNoToken            = errors.New("this endpoint requires a bearer token")
	errInvalidToken       = errors.New("the bearer token is invalid or expired")
)
