package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betimvpp/NlwSpacetimeServer/internal/errs"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", errs.MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNewAccessDeniedError(t *testing.T) {
	err := errs.NewAccessDeniedError()

	assert.Equal(t, http.StatusUnauthorized, err.Status)
	assert.Equal(t, "UNAUTHORIZED", err.Code)
	assert.True(t, err.Silent)
}

func TestNewBadRequestErrorCustomCode(t *testing.T) {
	code := "MEMORY_INVALID"
	fields := []errs.FieldError{{Field: "content", Error: "is required"}}

	err := errs.NewBadRequestError("Validation failed", true, &code, fields, nil)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, code, err.Code)
	assert.Equal(t, fields, err.Errors)
	assert.True(t, err.Override)
}

func TestHTTPErrorWithMessageKeepsShape(t *testing.T) {
	base := errs.NewAccessDeniedError()
	copied := base.WithMessage("nope")

	assert.Equal(t, "nope", copied.Message)
	assert.Equal(t, base.Status, copied.Status)
	assert.True(t, copied.Silent)
	assert.Equal(t, "Access denied", base.Message)
}

func TestHTTPErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get memory: %w", errs.NewNotFoundError("Memory not found", true, nil))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &errs.HTTPError{}))
}
