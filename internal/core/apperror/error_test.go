package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates_SurviveWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  int
	}{
		{"not found", NewNotFound("cart", int64(1)), IsNotFound, http.StatusNotFound},
		{"duplicate", NewDuplicate("deleted id", "deletedId", int64(7)), IsDuplicate, http.StatusConflict},
		{"invalid argument", NewInvalidArgument("id", int64(0)), IsInvalidArgument, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
			assert.Equal(t, tt.code, GetHTTPStatus(wrapped))
		})
	}
}

func TestPredicates_PlainError(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, IsNotFound(err))
	assert.False(t, IsDuplicate(err))
	assert.False(t, IsAppError(err))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(err))
}

func TestAppError_DetailsAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewNotFound("item", int64(10)).WithDetail("side", "right").WithCause(cause)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "right", appErr.Detail("side"))
	assert.Equal(t, int64(10), appErr.Detail("id"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "item not found")
	assert.Nil(t, (&AppError{}).Detail("missing"))
}
