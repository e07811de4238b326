package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughWrapped(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewForbidden("access denied"))

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, CodeForbidden, de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
}

func TestToDomainError_UnknownBecomesInternal(t *testing.T) {
	cause := errors.New("connection reset by peer")

	de := ToDomainError(cause)
	require.NotNil(t, de)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewFieldValidationError_SortsFields(t *testing.T) {
	err := NewFieldValidationError("validation failed", map[string]string{
		"title":    "cannot be blank",
		"jobType":  "must be a valid value",
		"location": "cannot be blank",
	})

	de := ToDomainError(err)
	require.Len(t, de.Fields, 3)
	assert.Equal(t, "jobType", de.Fields[0].Field)
	assert.Equal(t, "location", de.Fields[1].Field)
	assert.Equal(t, "title", de.Fields[2].Field)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
}

func TestConflictIsBadRequest(t *testing.T) {
	de := ToDomainError(NewConflict("user with this email already exists", nil))
	assert.Equal(t, CodeConflict, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.True(t, HasCode(de, CodeConflict))
	assert.False(t, HasCode(errors.New("x"), CodeConflict))
}
