package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a field-scoped validation error.
type Kind string

const (
	KindMissingField     Kind = "MissingField"
	KindInvalidFormat    Kind = "InvalidFormat"
	KindTooShort         Kind = "TooShort"
	KindInvalidEnum      Kind = "InvalidEnum"
	KindInvalidDependent Kind = "InvalidDependent"
	KindPastDate         Kind = "PastDate"
	KindInvalidOrder     Kind = "InvalidOrder"
)

// FieldError is the error surfaced next to a single form field.
type FieldError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// FieldErrors maps a field name to its error. A field carries at most one error.
type FieldErrors map[string]FieldError

// Add records an error for field unless one is already present.
func (f FieldErrors) Add(field string, kind Kind, message string) {
	if _, ok := f[field]; ok {
		return
	}

	f[field] = FieldError{Kind: kind, Message: message}
}

// Set records an error for field, replacing any previous one.
func (f FieldErrors) Set(field string, kind Kind, message string) {
	f[field] = FieldError{Kind: kind, Message: message}
}

func (f FieldErrors) Clone() FieldErrors {
	clone := make(FieldErrors, len(f))
	for field, fieldErr := range f {
		clone[field] = fieldErr
	}

	return clone
}

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Fields  FieldErrors `json:"fields,omitempty"`
}

var ErrInvalidRequest = &Failure{Code: http.StatusBadRequest, Message: "reservation request is invalid"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Invalid returns a bad request Failure carrying the given field errors, or nil when there are none.
func Invalid(fields FieldErrors) error {
	if len(fields) == 0 {
		return nil
	}

	return &Failure{
		Code:    ErrInvalidRequest.Code,
		Message: ErrInvalidRequest.Message,
		Fields:  fields,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetFields returns the field errors carried by err, or nil.
func GetFields(err error) FieldErrors {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Fields
	}

	return nil
}
