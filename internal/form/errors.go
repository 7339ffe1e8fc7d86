package form

import (
	"fmt"

	"github.com/formrunner/formrunner/internal/domain"
)

// FieldNotFoundError means no element matching a field's label could be
// resolved. Approximate labels fail on purpose: silent mis-fills are worse
// than a loud miss.
type FieldNotFoundError struct {
	Label string
	Kind  domain.FieldKind
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q (%s): no matching element found", e.Label, e.Kind)
}

// FillError means a field resolved but the interaction failed: a timeout,
// an option text with no exact match, or a missing attachment path.
type FillError struct {
	Label string
	Kind  domain.FieldKind
	Err   error
}

func (e *FillError) Error() string {
	return fmt.Sprintf("filling field %q (%s): %v", e.Label, e.Kind, e.Err)
}

func (e *FillError) Unwrap() error { return e.Err }

// SubmitError means no submit control was found or clicking it failed
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submitting form: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// SuccessTimeoutError means the form was submitted but no confirmation
// signal appeared within the timeout
type SuccessTimeoutError struct {
	Indicator string
	Err       error
}

func (e *SuccessTimeoutError) Error() string {
	return fmt.Sprintf("no success confirmation (%s): %v", e.Indicator, e.Err)
}

func (e *SuccessTimeoutError) Unwrap() error { return e.Err }

// NavigationError means the initial page load failed
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }
