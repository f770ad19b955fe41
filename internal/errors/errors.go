// FilePath: internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeMalformedTimestamp ErrorType = "malformed_timestamp"
	ErrorTypeInvalidParameter   ErrorType = "invalid_parameter"
	ErrorTypeIndexOutOfRange    ErrorType = "index_out_of_range"
	ErrorTypeDataNotReady       ErrorType = "data_not_ready"
	ErrorTypeDatabase           ErrorType = "database"
	ErrorTypeInternal           ErrorType = "internal"
)

// APIError represents a structured API error
type APIError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"error"`
	Code      int       `json:"-"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *APIError) Unwrap() error {
	return e.err
}

// WithRequestID adds a request ID to the error
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

// NewMalformedTimestampError creates an error for a timestamp that does not normalize
func NewMalformedTimestampError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeMalformedTimestamp,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewInvalidParameterError creates an error for a bad request parameter
func NewInvalidParameterError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidParameter,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewIndexOutOfRangeError creates an error for a record index outside the dataset
func NewIndexOutOfRangeError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeIndexOutOfRange,
		Message: msg,
		Code:    http.StatusNotFound,
		err:     err,
	}
}

// NewDataNotReadyError creates an error for queries arriving before the dataset is loaded
func NewDataNotReadyError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeDataNotReady,
		Message: msg,
		Code:    http.StatusServiceUnavailable,
		err:     err,
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeDatabase,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(msg string, err error) *APIError {
	return &APIError{
		Type:    ErrorTypeInternal,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// AsAPIError returns err as an *APIError, wrapping anything else as internal
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError("internal error", err)
}

func isType(err error, t ErrorType) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == t
	}
	return false
}

// IsDataNotReady checks if an error is a DataNotReady error
func IsDataNotReady(err error) bool {
	return isType(err, ErrorTypeDataNotReady)
}

// IsIndexOutOfRange checks if an error is an IndexOutOfRange error
func IsIndexOutOfRange(err error) bool {
	return isType(err, ErrorTypeIndexOutOfRange)
}

// IsMalformedTimestamp checks if an error is a MalformedTimestamp error
func IsMalformedTimestamp(err error) bool {
	return isType(err, ErrorTypeMalformedTimestamp)
}

// IsInvalidParameter checks if an error is an InvalidParameter error
func IsInvalidParameter(err error) bool {
	return isType(err, ErrorTypeInvalidParameter)
}
