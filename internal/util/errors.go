package util

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every fault the core returns. The core recovers from
// nothing locally: services map faults to a kind, controllers render them.
type ErrorKind int

const (
	KindStore ErrorKind = iota
	KindValidation
	KindPermission
	KindNotFound
	KindConflict
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
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

func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func NewPermissionError(message string) *AppError {
	return &AppError{Kind: KindPermission, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewStoreError(err error) *AppError {
	return &AppError{Kind: KindStore, Message: "store error", Err: err}
}

// AsAppError normalises any error to an AppError; unknown errors become
// store errors so nothing leaks past the envelope.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewStoreError(err)
}

func IsKind(err error, kind ErrorKind) bool {
	return AsAppError(err).Kind == kind
}
