package dispatch

import "fmt"

// ValidationError reports a missing or malformed required parameter. It is
// raised before any clip is touched, so a failed validation never leaves a
// batch partially applied.
type ValidationError struct {
	Tag    Tag
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: parameter %q %s", e.Tag, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Tag, e.Reason)
}

// UnknownActionError reports an action tag absent from the registry. This is
// a programmer-level error, distinct from a per-clip runtime failure.
type UnknownActionError struct {
	Tag Tag
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", string(e.Tag))
}

func requiredParam(tag Tag, field string) error {
	return &ValidationError{Tag: tag, Field: field, Reason: "is required"}
}

func invalidParam(tag Tag, field, reason string) error {
	return &ValidationError{Tag: tag, Field: field, Reason: reason}
}
