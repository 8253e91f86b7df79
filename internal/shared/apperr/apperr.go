// Package apperr holds the error taxonomy shared by the dashboard services.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrDataUnavailable means the row source could not be reached or failed the query.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInvalidArgument means a required parameter was missing or unsupported.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedRow means a source row could not be turned into a record.
	ErrMalformedRow = errors.New("malformed row")
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// Status maps an error from the taxonomy to an HTTP status code.
func Status(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDataUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrMalformedRow):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// HTTPError converts err into a fiber error carrying the mapped status.
func HTTPError(err error) error {
	return fiber.NewError(Status(err), err.Error())
}
