package errs

import "strings"

// FieldError is a single field-level validation problem.
//
//	{ "field": "content", "error": "is required" }
type FieldError struct {
	// Field is the JSON key the error relates to (e.g. "convertUrl").
	Field string `json:"field"`

	// Error is the human-readable message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate to Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional hint the frontend can act on, e.g. send the user back
// to the sign-in page when their session expired.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type every handler, middleware and mapper converges on.
//
// It is serialized as-is by the global error handler:
//   - Code: machine-friendly code (e.g. "NOT_FOUND", "MEMORY_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the frontend may show Message verbatim.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
//
// Silent errors are written as a bare status line without a body, so nothing
// about the underlying record leaks to the caller.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`

	Action *Action `json:"action"`

	Silent bool `json:"-"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and status are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
		Silent:   e.Silent,
	}
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
