package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ValidationError reports malformed or out-of-range input. It is surfaced to
// the caller verbatim and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError reports that a resource is already taken: an occupied slot or
// a duplicate service report.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
}

// AuthorizationError reports a wrong role or wrong owning actor. The message
// stays generic so it does not leak which resources exist.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// NotFoundError reports an unknown booking, schedule or user.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// StateError reports an illegal lifecycle transition. The current state is
// included so the client can render a useful message.
type StateError struct {
	Current   string
	Attempted string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s a booking in state %q", e.Attempted, e.Current)
}

// StatusCode maps a domain error to its HTTP status.
func StatusCode(err error) int {
	var (
		validation *ValidationError
		conflict   *ConflictError
		authz      *AuthorizationError
		notFound   *NotFoundError
		state      *StateError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &conflict):
		return fiber.StatusConflict
	case errors.As(err, &authz):
		return fiber.StatusForbidden
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &state):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes a JSON error response with the status implied by err.
func Fail(c *fiber.Ctx, message string, err error) error {
	return c.Status(StatusCode(err)).JSON(ErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}
