package errors

import (
	"net/http"
	"testing"

	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_DerivedCopiesMatchOriginal(t *testing.T) {
	derived := ErrInsufficientStock.WithMessage("Insufficient stock for Jersey: only 3 left").WithDetails("available=3")

	assert.True(t, errors.Is(derived, ErrInsufficientStock))
	assert.False(t, errors.Is(derived, ErrOrderNotFound))
	assert.Equal(t, http.StatusBadRequest, derived.HTTPCode())
	assert.Equal(t, "INSUFFICIENT_STOCK", derived.ErrorCode())
	assert.Equal(t, "available=3", derived.Details())
	assert.Equal(t, "Insufficient stock", ErrInsufficientStock.Message())
}

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := ErrReviewAlreadyExists.WrapMessage("create review")

	var appErr AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "REVIEW_ALREADY_EXISTS", appErr.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	err := NewDatabaseExecuteError(errors.New("connection reset"), "failed to create order")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Contains(t, err.Error(), "connection reset")
}
