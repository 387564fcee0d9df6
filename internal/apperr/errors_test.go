package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("sale"), http.StatusNotFound},
		{"insufficient stock", &InsufficientStockError{Available: 1, Requested: 2}, http.StatusConflict},
		{"duplicate", Duplicate("email taken"), http.StatusConflict},
		{"transient", Transient(errors.New("connection refused")), http.StatusServiceUnavailable},
		{"wrapped validation", fmt.Errorf("checkout: %w", Validation("bad input")), http.StatusBadRequest},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestClassifyDB(t *testing.T) {
	t.Run("duplicated key", func(t *testing.T) {
		var dup *DuplicateError
		assert.ErrorAs(t, ClassifyDB(gorm.ErrDuplicatedKey), &dup)
	})

	t.Run("foreign key", func(t *testing.T) {
		var dup *DuplicateError
		assert.ErrorAs(t, ClassifyDB(gorm.ErrForeignKeyViolated), &dup)
	})

	t.Run("passthrough", func(t *testing.T) {
		raw := errors.New("boom")
		assert.Same(t, raw, ClassifyDB(raw))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, ClassifyDB(nil))
	})
}

func TestInsufficientStockMessage(t *testing.T) {
	id := uuid.New()
	err := &InsufficientStockError{ProductID: id, ProductName: "ABRIGO", Available: 3, Requested: 5}

	assert.Contains(t, err.Error(), "ABRIGO")
	assert.Contains(t, err.Error(), id.String())
	assert.Contains(t, err.Error(), "available 3")
	assert.Contains(t, err.Error(), "requested 5")
}

func TestNotFoundMessage(t *testing.T) {
	assert.EqualError(t, NotFound("customer"), "customer not found")
}
