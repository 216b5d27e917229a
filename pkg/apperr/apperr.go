// Package apperr defines the API error taxonomy.
//
// Every failure a handler can surface is one of these typed errors; the
// controller layer maps them to JSON envelopes via response.AppError.
// Anything that is not an *apperr.Error is treated as InternalError: logged
// in full server-side, returned to the caller as a generic message.
package apperr

import (
	"errors"
	"net/http"
)

// Error carries a stable machine code, the HTTP status to respond with,
// and a caller-facing message.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// Is makes errors.Is match on Code, so sentinel comparisons work even when
// an error was rebuilt with a customised message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrMissingFields = &Error{
		Code:    "MissingFields",
		Status:  http.StatusBadRequest,
		Message: "All required fields must be provided.",
	}
	ErrInvalidDomain = &Error{
		Code:    "InvalidDomain",
		Status:  http.StatusBadRequest,
		Message: "Email must belong to the @ucq.edu.mx domain.",
	}
	ErrMissingStudentIDInEmail = &Error{
		Code:    "MissingStudentIdInEmail",
		Status:  http.StatusBadRequest,
		Message: "Email must end with your student ID before the @.",
	}
	ErrStudentIDMismatch = &Error{
		Code:    "StudentIdMismatch",
		Status:  http.StatusBadRequest,
		Message: "The student ID does not match the one in your email.",
	}
	ErrDuplicateUser = &Error{
		Code:    "DuplicateUser",
		Status:  http.StatusConflict,
		Message: "An account with that email or student ID already exists.",
	}
	ErrInvalidCredentials = &Error{
		Code:    "InvalidCredentials",
		Status:  http.StatusUnauthorized,
		Message: "Invalid email or password.",
	}
	ErrMissingToken = &Error{
		Code:    "MissingToken",
		Status:  http.StatusUnauthorized,
		Message: "Authorization token is required.",
	}
	ErrInvalidToken = &Error{
		Code:    "InvalidToken",
		Status:  http.StatusUnauthorized,
		Message: "Invalid or expired token.",
	}
	ErrForbidden = &Error{
		Code:    "Forbidden",
		Status:  http.StatusForbidden,
		Message: "You do not have permission to access this resource.",
	}
	ErrInvalidStatus = &Error{
		Code:    "InvalidStatus",
		Status:  http.StatusBadRequest,
		Message: "Status must be one of: preparing, ready, delivered, cancelled.",
	}
	ErrOrderNotFound = &Error{
		Code:    "OrderNotFound",
		Status:  http.StatusNotFound,
		Message: "Order not found.",
	}
	ErrProductNotFound = &Error{
		Code:    "ProductNotFound",
		Status:  http.StatusNotFound,
		Message: "Product not found.",
	}
	ErrInternal = &Error{
		Code:    "InternalError",
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again later.",
	}
)

// From returns err as an *Error, falling back to ErrInternal for anything
// outside the taxonomy.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}
