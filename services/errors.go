package services

import (
	"errors"
	"fmt"
	"net/http"

	"glamstudio-backend/models"
)

// ValidationError means the caller's input was rejected before any store call.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%d invalid fields)", e.Message, len(e.Fields))
}

// NotFoundError means an update targeted an id that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PersistenceError means the store rejected a write. Local state must not be
// treated as committed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// validationFrom converts a validator failure into a ValidationError.
func validationFrom(message string, err error) *ValidationError {
	if fields := models.FieldErrors(err); fields != nil {
		return &ValidationError{Message: message, Fields: fields}
	}
	return &ValidationError{Message: message + ": " + err.Error()}
}

// HTTPStatus maps service errors onto response codes.
func HTTPStatus(err error) int {
	var (
		verr *ValidationError
		nerr *NotFoundError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
