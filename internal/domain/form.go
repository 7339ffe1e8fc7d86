package domain

import "fmt"

// FormConfig describes one target form: where it lives and how to tell
// that a submission went through. Immutable for the duration of a run.
type FormConfig struct {
	// URL of the form page. Must be non-empty.
	URL string `json:"url"`

	// IdleSpinner, when set, is a selector for a loading indicator that
	// must disappear before fields are filled.
	IdleSpinner string `json:"idle_spinner,omitempty"`

	// SuccessSelector, when set, is a selector (or text pattern) whose
	// appearance confirms submission.
	SuccessSelector string `json:"success_selector,omitempty"`

	// SuccessURLContains, when set, confirms submission once the page
	// URL contains this substring.
	SuccessURLContains string `json:"success_url_contains,omitempty"`

	// SubmitSelector overrides the default submit-button heuristic.
	SubmitSelector string `json:"submit_selector,omitempty"`
}

// Validate checks the config invariants
func (c *FormConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("form config has no url")
	}
	return nil
}
