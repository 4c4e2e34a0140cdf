package models

import (
	"fmt"
)

// APIError is the error envelope returned on every non-2xx response. Error is
// a plain string for most failures and a map of field name to message array
// for validation failures.
type APIError struct {
	Status int         `json:"status"`
	Error  interface{} `json:"error"`
}

// NewAPIError creates an envelope with a plain string message.
func NewAPIError(status int, message string) APIError {
	return APIError{Status: status, Error: message}
}

// NewValidationError creates a 400 envelope carrying aggregated per-field
// message arrays.
func NewValidationError(fields map[string][]string) APIError {
	return APIError{Status: 400, Error: fields}
}

// NewNotFoundError creates the 404 envelope for a missing resource, e.g.
// "User with ID of 42 not found."
func NewNotFoundError(resource string, id int64) APIError {
	return APIError{Status: 404, Error: fmt.Sprintf("%s with ID of %d not found.", resource, id)}
}
