package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOwned is returned when a user touches a set or card of another user.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrNoPerformance is returned when a report is requested for an empty session.
	ErrNoPerformance = errors.New("no graded cards in session")
)

// ServiceError records which service operation failed.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{Service: service, Operation: operation, Message: message, Err: err}
}
