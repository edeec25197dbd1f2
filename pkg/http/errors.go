package http

import (
	"fmt"
	"net/http"
)

// Error codes carried in the response envelope.
const (
	CodeInvalidID       = "ERR_INVALID_ID"
	CodeNotFound        = "ERR_NOT_FOUND"
	CodeDegenerateInput = "ERR_DEGENERATE_INPUT"
	CodeValidation      = "ERR_VALIDATION"
	CodeInternal        = "ERR_INTERNAL"
)

// AppError is an error with the HTTP status it should be answered with.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, field, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Status:  status,
	}
}

// WithError attaches the cause. It is logged, never rendered.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// InvalidIDError is a 400 for a malformed competitor id.
func InvalidIDError(message string) *AppError {
	return NewAppError(CodeInvalidID, "id", message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, "", message, http.StatusNotFound)
}

// DegenerateInputError is a 400 for inputs the similarity math cannot use,
// such as an empty corpus or a zero vector.
func DegenerateInputError(message string) *AppError {
	return NewAppError(CodeDegenerateInput, "", message, http.StatusBadRequest)
}

// ValidationFailedError is a 400 for a record breaking a domain rule.
func ValidationFailedError(message string) *AppError {
	return NewAppError(CodeValidation, "", message, http.StatusBadRequest)
}

func InternalError(message string) *AppError {
	return NewAppError(CodeInternal, "", message, http.StatusInternalServerError)
}
