package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrMissingField          = errors.New("required field missing")
	ErrWrongPostType         = errors.New("wrong post type for this operation")
	ErrNotFound              = errors.New("resource not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrAlreadyExists         = errors.New("resource already exists")
	ErrAlreadyRated          = errors.New("rating already submitted for this post")
	ErrNotAvailable          = errors.New("post is no longer available")
	ErrWrongState            = errors.New("operation not allowed in current post state")
	ErrNotDeletable          = errors.New("post can only be deleted while active")
	ErrNotAuthorized         = errors.New("user is not a participant of this post")
	ErrNotOwner              = errors.New("user is not the owner of this post")
	ErrInvalidCode           = errors.New("invalid verification code")
	ErrCodeExpired           = errors.New("verification code expired")
	ErrEmailNotVerified      = errors.New("email not verified")
	ErrNoPendingRegistration = errors.New("no pending registration for this email")
	ErrNotificationFailed    = errors.New("notification dispatch failed")
	ErrDependency            = errors.New("dependency failure")
)

// Error kind codes, one per failure category. The HTTP layer maps these
// to transport codes; the engine itself only reasons about kinds.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeState         = "STATE_ERROR"
	CodeAuthorization = "AUTHORIZATION_ERROR"
	CodeExpired       = "EXPIRED"
	CodeDependency    = "DEPENDENCY_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError carries a failure kind, an HTTP status and a human-readable message
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func Validation(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, err)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, err)
}

func State(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, CodeState, message, err)
}

func Authorization(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, CodeAuthorization, message, err)
}

func Expired(message string, err error) *AppError {
	return NewAppError(http.StatusGone, CodeExpired, message, err)
}

func Dependency(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeDependency, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// Kind returns the kind code for a domain error, classifying the
// sentinel errors above and any AppError wrapping them.
func Kind(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrWrongPostType):
		return CodeValidation
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrNoPendingRegistration):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrAlreadyRated):
		return CodeConflict
	case errors.Is(err, ErrNotAvailable),
		errors.Is(err, ErrWrongState),
		errors.Is(err, ErrNotDeletable):
		return CodeState
	case errors.Is(err, ErrNotAuthorized),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrEmailNotVerified):
		return CodeAuthorization
	case errors.Is(err, ErrCodeExpired):
		return CodeExpired
	case errors.Is(err, ErrNotificationFailed),
		errors.Is(err, ErrDependency):
		return CodeDependency
	default:
		return CodeInternal
	}
}
