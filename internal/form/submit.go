package form

import (
	"fmt"

	"github.com/formrunner/formrunner/internal/domain"
)

// fallbackSubmitSelectors are tried in order when no submit_selector is
// configured and no button advertises a submit role name
var fallbackSubmitSelectors = []string{
	"button[type='submit']",
	"input[type='submit']",
	"button:has-text('Submit')",
	"button:has-text('Send')",
	"button:has-text('Send Form')",
}

// defaultSuccessPattern is the documented default success indicator, used
// when the form config names neither a selector nor a URL substring
const defaultSuccessPattern = "text=/thank you|thanks|submitted|success|response/i"

// submit locates and clicks the submit control. The configured selector
// wins; otherwise a button with an accessible submit name, then the
// fallback selector list.
func submit(page Page, cfg domain.FormConfig) error {
	if cfg.SubmitSelector != "" {
		el := page.Locator(cfg.SubmitSelector)
		ok, err := el.Exists()
		if err != nil {
			return &SubmitError{Err: err}
		}
		if !ok {
			return &SubmitError{Err: fmt.Errorf("submit selector %q matched nothing", cfg.SubmitSelector)}
		}
		if err := el.Click(); err != nil {
			return &SubmitError{Err: err}
		}
		return nil
	}

	candidates := []Element{page.SubmitButton()}
	for _, sel := range fallbackSubmitSelectors {
		candidates = append(candidates, page.Locator(sel))
	}
	for _, el := range candidates {
		ok, err := el.Exists()
		if err != nil {
			return &SubmitError{Err: err}
		}
		if !ok {
			continue
		}
		if err := el.Click(); err != nil {
			return &SubmitError{Err: err}
		}
		return nil
	}

	return &SubmitError{Err: fmt.Errorf("no submit control found")}
}

// waitForSuccess blocks until the configured success indicator shows up.
// A configured selector wins over a URL substring; with neither configured
// the default text pattern is used. Timeout is a *SuccessTimeoutError.
func waitForSuccess(page Page, cfg domain.FormConfig) error {
	switch {
	case cfg.SuccessSelector != "":
		if err := page.WaitVisible(cfg.SuccessSelector); err != nil {
			return &SuccessTimeoutError{Indicator: cfg.SuccessSelector, Err: err}
		}
	case cfg.SuccessURLContains != "":
		if err := page.WaitForURLContains(cfg.SuccessURLContains); err != nil {
			return &SuccessTimeoutError{
				Indicator: fmt.Sprintf("url contains %q", cfg.SuccessURLContains),
				Err:       err,
			}
		}
	default:
		if err := page.WaitVisible(defaultSuccessPattern); err != nil {
			return &SuccessTimeoutError{Indicator: defaultSuccessPattern, Err: err}
		}
	}
	return nil
}
