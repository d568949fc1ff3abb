package errors

import (
	"errors"
	"fmt"
	"testing"

	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewValidationError("top_n must be positive", nil),
			expected: "[VALIDATION] top_n must be positive",
		},
		{
			name:     "with cause",
			err:      NewInputError("cannot open input", fmt.Errorf("permission denied")),
			expected: "[INPUT] cannot open input: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewStorageError("write table", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAppError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("load: %w", NewMalformedRowError(7, "job_skills", errors.New("bad list")))

	assert.True(t, errors.Is(err, ErrMalformedRow))
	assert.False(t, errors.Is(err, ErrInput))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 7, appErr.Context["row"])
	assert.Equal(t, "job_skills", appErr.Context["field"])
}

func TestAppError_Stack(t *testing.T) {
	err := NewParsingError("bad date", nil)
	assert.NotEmpty(t, err.StackTrace())

	wrapped := goerrors.Wrap(errors.New("inner"), 0)
	withStack := NewRenderError("chart", wrapped)
	assert.Equal(t, wrapped.Stack(), withStack.StackTrace())
}

func TestTypeOf(t *testing.T) {
	typ, ok := TypeOf(fmt.Errorf("wrap: %w", NewConfigError("bad yaml", nil)))
	assert.True(t, ok)
	assert.Equal(t, ErrTypeConfig, typ)

	_, ok = TypeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestAppError_WithContext(t *testing.T) {
	err := (&AppError{Type: ErrTypeInput}).WithContext("path", "jobs.csv")
	assert.Equal(t, "jobs.csv", err.Context["path"])
}
