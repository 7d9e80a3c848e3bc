package schema

import "fmt"

// FieldError represents a single parameter validation failure.
type FieldError struct {
	Field  string // Parameter name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("parameter %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("parameter %q: %s (got %T)", e.Field, e.Reason, e.Value)
}

// AggregateError collects every field failure found in one validation pass.
type AggregateError struct {
	Errors []*FieldError
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// FieldErrors returns the individual failures if err is an AggregateError.
// Otherwise returns nil.
func FieldErrors(err error) []*FieldError {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
