package repos

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store failures are surfaced as an AppError with an HTTP-like numeric code:
// 502 record not found, 501 database/constraint failure, 500 anything else.
// Not-found is kept distinguishable so callers can decide whether to create.
const (
	CodeUnknown       = 500
	CodeDatabaseError = 501
	CodeNotFound      = 502
)

type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s = %d", e.Message, e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// translate maps a gorm error onto the uniform taxonomy.
func translate(err error, context string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s: record not found", context), Err: err}
	}
	return &AppError{Code: CodeDatabaseError, Message: fmt.Sprintf("%s: %v", context, err), Err: err}
}

// IsNotFound reports whether err is the not-found member of the taxonomy.
func IsNotFound(err error) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == CodeNotFound
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}
