package amortization

import (
	"errors"
	"fmt"
)

// Field identifies which loan term failed validation
type Field string

const (
	FieldTerm   Field = "term_months"
	FieldAmount Field = "amount"
	FieldRate   Field = "apr"
)

// ValidationError reports a loan term outside its accepted bounds.
// It is returned before any arithmetic is performed.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newValidationError(field Field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ValidationField returns the offending field of a ValidationError, or "" for other errors
func ValidationField(err error) Field {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Field
	}
	return ""
}
