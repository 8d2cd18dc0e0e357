package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeAuthorizationMismatch, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidImage, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"VALIDATION_FAILED", ErrCodeValidation},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"AUTHORIZATION_MISMATCH", ErrCodeAuthorizationMismatch},
		{"INVALID_IMAGE", ErrCodeInvalidImage},
		{"INVALID_PRICE", ErrCodeValidation},
		{"INVALID_", ErrCodeInternal},
		{"PASSWORD_HASH_ERROR", ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Product not found", "req-123")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"Product not found","request_id":"req-123"}}`,
		string(raw))

	raw, err = json.Marshal(NewErrorResponse(ErrCodeUnauthorized, "Authentication required"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "request_id")
}
