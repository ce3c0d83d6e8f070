package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without internal",
			err:  New(http.StatusNotFound, "not_found", "Resource not found"),
			want: "not_found: Resource not found",
		},
		{
			name: "with internal",
			err:  NewInternal("render failed", errors.New("boom")),
			want: "internal_error: render failed (boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("disk on fire")
	err := ErrInternal.WithInternal(inner)

	assert.ErrorIs(t, err, inner)
	assert.Nil(t, ErrNotFound.Unwrap())
}

func TestError_CopiesDoNotMutateSentinels(t *testing.T) {
	custom := ErrNotFound.WithMessage("gone").WithDetails(map[string]any{"path": "/x"})

	assert.Equal(t, "gone", custom.Message)
	assert.Equal(t, "Resource not found", ErrNotFound.Message)
	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, http.StatusNotFound, custom.HTTPStatus)
}

func TestError_WithInternalKeepsDetails(t *testing.T) {
	err := ErrNotReady.WithDetails(map[string]any{"field": "x"}).WithInternal(errors.New("cause"))

	assert.Equal(t, map[string]any{"field": "x"}, err.Details)
}

func TestToHTTPError(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		code, body := ToHTTPError(ErrRateLimited)

		assert.Equal(t, http.StatusTooManyRequests, code)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "rate_limited", errObj["code"])
		assert.Equal(t, "Too many requests", errObj["message"])
		assert.NotContains(t, errObj, "details")
	})

	t.Run("wrapped app error", func(t *testing.T) {
		code, body := ToHTTPError(fmt.Errorf("serve: %w", ErrNotReady))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not_ready", body["error"].(map[string]any)["code"])
	})

	t.Run("details", func(t *testing.T) {
		_, body := ToHTTPError(ErrNotReady.WithDetails(map[string]any{"field": "city"}))

		errObj := body["error"].(map[string]any)
		assert.Equal(t, map[string]any{"field": "city"}, errObj["details"])
	})

	t.Run("plain error is opaque", func(t *testing.T) {
		code, body := ToHTTPError(errors.New("secret internals"))

		assert.Equal(t, http.StatusInternalServerError, code)
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "internal_error", errObj["code"])
		assert.Equal(t, "An internal error occurred", errObj["message"])
	})
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("/nope")

	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "not_found", err.Code)
	assert.Equal(t, "No route for '/nope'", err.Message)
}
