package apperror

import "net/http"

// Error is a business-rule violation carrying the HTTP status it should be
// reported with. Persistence-level failures (duplicate key, missing FK,
// record not found) are mapped separately from the translated gorm errors.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}
