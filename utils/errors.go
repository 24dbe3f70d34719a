// utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies the failure class carried across the workflow.
type ErrorCode string

const (
	ErrCodeConfiguration      ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodePersistence        ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeDelivery           ErrorCode = "DELIVERY_ERROR"
	ErrCodeUnsupportedChannel ErrorCode = "UNSUPPORTED_CHANNEL"
)

// AppError is a typed application error with an HTTP status attached so
// controllers can map it to a response without inspecting the message.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"-"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports missing or invalid settings or credentials.
// Fatal to the whole run.
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// NewValidationError reports missing caller-supplied fields.
func NewValidationError(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Status: http.StatusBadRequest}
}

// NewPersistenceError reports a database read or write failure.
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Code: ErrCodePersistence, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// NewDeliveryError reports an outbound provider failure.
func NewDeliveryError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeDelivery, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// NewUnsupportedChannelError reports a reminder channel this system cannot
// dispatch.
func NewUnsupportedChannelError(channel string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedChannel,
		Message: fmt.Sprintf("Unsupported reminder type %q. Only 'email' and 'in_app' are supported.", channel),
		Status:  http.StatusBadRequest,
	}
}

// HTTPStatus returns the status carried by an AppError, or 500 for anything
// else.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
