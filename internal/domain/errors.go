package domain

import (
	"errors"

	"git.appkode.ru/pub/go/failure"
)

// AppError is a domain error tagged with a client-facing code.
type AppError struct {
	Code    failure.ErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// GetCode extracts the code of the first AppError in the chain.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}

	return "", false
}
