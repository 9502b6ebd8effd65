package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrUnauthorized,
		ErrConflict, ErrUnavailable, ErrInternal,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j])
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	withInner := &AppError{Code: "INTERNAL_ERROR", Message: "save failed", Err: fmt.Errorf("disk full")}
	assert.Equal(t, "INTERNAL_ERROR: save failed: disk full", withInner.Error())

	plain := &AppError{Code: "NOT_FOUND", Message: "product \"9\" not found"}
	assert.Equal(t, `NOT_FOUND: product "9" not found`, plain.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		status   int
		sentinel error
	}{
		{"not found", NotFound("product", "9"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"invalid", InvalidInput("Please select a size"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"unauthorized", Unauthorized("Login failed"), "UNAUTHORIZED", http.StatusUnauthorized, ErrUnauthorized},
		{"conflict", Conflict("already exists"), "CONFLICT", http.StatusConflict, ErrConflict},
		{"unavailable", Unavailable("Something went wrong", errors.New("dial tcp")), "UNAVAILABLE", http.StatusBadGateway, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound("product", "42")
	assert.Equal(t, `product "42" not found`, err.Message)
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("lookup: %w", ErrNotFound)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("decode: %w", ErrInvalidInput)))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(fmt.Errorf("login: %w", ErrUnavailable)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("encode failed")
	err := Internal(cause)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "an internal error occurred", err.Message)
}
