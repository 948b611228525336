package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betimvpp/NlwSpacetimeServer/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorNoRowsWithTable(t *testing.T) {
	err := HandleError(fmt.Errorf("table:memories: %w", pgx.ErrNoRows))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Memory not found", httpErr.Message)
}

func TestHandleErrorNoRowsWithoutTable(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(sql.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewAccessDeniedError()

	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorPgViolations(t *testing.T) {
	tests := []struct {
		name     string
		pgErr    *pgconn.PgError
		status   int
		code     string
		message  string
		hasField bool
	}{
		{
			name:    "unique violation names the column",
			pgErr:   &pgconn.PgError{Code: "23505", Severity: "ERROR", TableName: "memories", ConstraintName: "memories_id_key"},
			status:  http.StatusBadRequest,
			code:    "MEMORY_ALREADY_EXISTS",
			message: "A Memory with this Id already exists",
		},
		{
			name:     "not null violation becomes a field error",
			pgErr:    &pgconn.PgError{Code: "23502", Severity: "ERROR", TableName: "memories", ColumnName: "content"},
			status:   http.StatusBadRequest,
			code:     "MEMORY_REQUIRED",
			message:  "The Content is required",
			hasField: true,
		},
		{
			name:    "check violation",
			pgErr:   &pgconn.PgError{Code: "23514", Severity: "ERROR", TableName: "memories", ColumnName: "convert_url"},
			status:  http.StatusBadRequest,
			code:    "MEMORY_INVALID",
			message: "The Convert Url value does not meet required conditions",
		},
		{
			name:    "unknown state is a 500",
			pgErr:   &pgconn.PgError{Code: "XX000", Severity: "FATAL", Message: "internal_error"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert memory: %w", tt.pgErr)))

			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, tt.hasField, len(httpErr.Errors) > 0)
		})
	}
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCodeAndMapping(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505", Severity: "ERROR"})

	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, Other, MapCode("99999"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "memory", singular("memories"))
	assert.Equal(t, "user", singular("users"))
	assert.Equal(t, "s", singular("s"))
}
