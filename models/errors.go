package models

import "fmt"

// ErrorValidation is returned for malformed or missing input.
type ErrorValidation struct {
	Message string
	Details map[string]string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	return e.Message
}

// ErrorNotFound is returned when a referenced entity does not exist.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

// ErrorConflict is returned when a write would break a uniqueness rule
// or an allowed state transition.
type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string {
	return e.Message
}

// ErrorInternalServer carries a cause that is logged but never shown to
// the caller.
type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return ErrorValidation{Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return ErrorNotFound{Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...interface{}) error {
	return ErrorConflict{Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...interface{}) error {
	return ErrorForbidden{Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(format string, args ...interface{}) error {
	return ErrorUnauthorized{Message: fmt.Sprintf(format, args...)}
}

// Commonly returned errors.
var (
	ErrBlogNotFound         = ErrorNotFound{Message: "Blog not found"}
	ErrUserNotFound         = ErrorNotFound{Message: "User not found"}
	ErrCategoryNotFound     = ErrorNotFound{Message: "Category not found"}
	ErrCommentNotFound      = ErrorNotFound{Message: "Comment not found"}
	ErrRevisionNotFound     = ErrorNotFound{Message: "Revision not found"}
	ErrReportNotFound       = ErrorNotFound{Message: "Report not found"}
	ErrNotificationNotFound = ErrorNotFound{Message: "Notification not found"}
	ErrHistoryNotFound      = ErrorNotFound{Message: "History not found"}
	ErrCategoryExists       = ErrorConflict{Message: "Category with this name or slug already exists"}
)
