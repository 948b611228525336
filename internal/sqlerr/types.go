package sqlerr

import "fmt"

// Code is a coarse classification of a PostgreSQL SQLSTATE.
type Code string

const (
	Other                 Code = "other"
	NotNullViolation      Code = "not_null_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	UniqueViolation       Code = "unique_violation"
	CheckViolation        Code = "check_violation"
	ExclusionViolation    Code = "exclusion_violation"
	InvalidTextRepr       Code = "invalid_text_representation"
	StringDataTruncation  Code = "string_data_right_truncation"
	SerializationFailure  Code = "serialization_failure"
	DeadlockDetected      Code = "deadlock_detected"
	QueryCanceled         Code = "query_canceled"
	TooManyConnections    Code = "too_many_connections"
	UndefinedTable        Code = "undefined_table"
	InsufficientPrivilege Code = "insufficient_privilege"
)

// SQLSTATE values, see https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlStates = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22P02": InvalidTextRepr,
	"22001": StringDataTruncation,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"57014": QueryCanceled,
	"53300": TooManyConnections,
	"42P01": UndefinedTable,
	"42501": InsufficientPrivilege,
}

// MapCode maps a SQLSTATE to a Code. Unknown states map to Other.
func MapCode(sqlState string) Code {
	if code, ok := sqlStates[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the severity field Postgres attaches to every error.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity normalizes the severity string; anything unexpected is an error.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a driver-independent view of a database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

// Unwrap exposes the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
