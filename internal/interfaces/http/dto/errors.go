package dto

import "net/http"

// Error codes returned in JSON error bodies.
// Format: ERR_<DESCRIPTION>
const (
	ErrCodeInternal              = "ERR_INTERNAL"
	ErrCodeValidation            = "ERR_VALIDATION"
	ErrCodeUnauthorized          = "ERR_UNAUTHORIZED"
	ErrCodeForbidden             = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials    = "ERR_INVALID_CREDENTIALS"
	ErrCodeAuthorizationMismatch = "ERR_AUTHORIZATION_MISMATCH"
	ErrCodeNotFound              = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists         = "ERR_ALREADY_EXISTS"
	ErrCodeBadRequest            = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput          = "ERR_INVALID_INPUT"
	ErrCodeInvalidImage          = "ERR_INVALID_IMAGE"
	ErrCodeRateLimited           = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:              http.StatusInternalServerError,
	ErrCodeValidation:            http.StatusBadRequest,
	ErrCodeUnauthorized:          http.StatusUnauthorized,
	ErrCodeForbidden:             http.StatusForbidden,
	ErrCodeInvalidCredentials:    http.StatusUnauthorized,
	ErrCodeAuthorizationMismatch: http.StatusForbidden,
	ErrCodeNotFound:              http.StatusNotFound,
	ErrCodeAlreadyExists:         http.StatusConflict,
	ErrCodeBadRequest:            http.StatusBadRequest,
	ErrCodeInvalidInput:          http.StatusBadRequest,
	ErrCodeInvalidImage:          http.StatusBadRequest,
	ErrCodeRateLimited:           http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodes maps domain error codes to response codes
var domainErrorCodes = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"VALIDATION_FAILED":      ErrCodeValidation,
	"UNAUTHORIZED":           ErrCodeUnauthorized,
	"FORBIDDEN":              ErrCodeForbidden,
	"INVALID_CREDENTIALS":    ErrCodeInvalidCredentials,
	"AUTHORIZATION_MISMATCH": ErrCodeAuthorizationMismatch,
	"INVALID_IMAGE":          ErrCodeInvalidImage,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its response code.
// Field-level domain codes (INVALID_NAME, INVALID_PRICE, ...) count as validation failures.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainErrorCodes[code]; ok {
		return mapped
	}
	if len(code) > len("INVALID_") && code[:len("INVALID_")] == "INVALID_" {
		return ErrCodeValidation
	}
	return ErrCodeInternal
}
