package models

import "errors"

// Application-wide standard errors
var (
	// Common resource/DB errors
	ErrNotFound        = errors.New("resource not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrVoiceNotFound   = errors.New("voice not found")

	// User & authentication errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Token errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// Validation / workspace errors
	ErrValidation          = errors.New("validation error")
	ErrTitleRequired       = errors.New("project title is required")
	ErrOperationInProgress = errors.New("operation of this kind is already in progress")

	// Upstream errors
	ErrGenerationFailed = errors.New("generation failed")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)

// Error codes returned in the ErrorResponse body.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeWrongCredentials = "WRONG_CREDENTIALS"
	ErrCodeDuplicateUser    = "DUPLICATE_USER"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeTokenInvalid     = "TOKEN_INVALID"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeUpstreamFailed   = "UPSTREAM_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
