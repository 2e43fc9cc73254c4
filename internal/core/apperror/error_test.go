package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("product", "apples")))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(NewValidation("bad input")))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(NewDuplicate("product", "name", "apples")))

	// Works through wrapping, falls back to 500 for foreign errors.
	wrapped := fmt.Errorf("save profile: %w", NewPersistence("write", errors.New("disk full")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(wrapped))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestWithDetailAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternal(cause).WithDetail("request_id", "r-1")

	assert.Equal(t, "r-1", err.Details["request_id"])
	assert.True(t, errors.Is(err, cause))
}
