// Package form maps declarative field descriptions onto browser actions
// and verifies that a submission went through.
package form

// Element is one interactive control on the page. Handles are lazy: they
// may be created for a selector that matches nothing, which Exists reports.
type Element interface {
	// Exists reports whether the handle matches at least one element.
	Exists() (bool, error)
	// Click clicks the first matched element.
	Click() error
	// Fill clears the element and types the value.
	Fill(value string) error
	// IsChecked reports the checked state of a checkbox.
	IsChecked() (bool, error)
	// InputValue returns the current value of an input or textarea.
	InputValue() (string, error)
	// SetInputFiles points a file input at a local file path.
	SetInputFiles(path string) error
	// WaitVisible blocks until the element is visible or the page
	// timeout elapses.
	WaitVisible() error
}

// Page is the browser capability the engine consumes. The real
// implementation lives in internal/browser; tests use a scripted fake.
// All waits are bounded by the page's configured timeout.
type Page interface {
	// Goto navigates to the given URL and waits for the document to load.
	Goto(url string) error
	// Locator returns a handle for the first element matching the
	// selector in document order.
	Locator(selector string) Element
	// ByLabel returns a handle for the control associated with the exact
	// visible label text.
	ByLabel(label string) Element
	// OptionByText returns a handle for the visible option row whose text
	// exactly equals the given string. Option lists only exist in the
	// document while their trigger is open.
	OptionByText(text string) Element
	// SubmitButton returns a handle for a button whose accessible name
	// indicates submission.
	SubmitButton() Element
	// URL returns the current page URL.
	URL() string
	// WaitForURLContains blocks until the page URL contains the substring.
	WaitForURLContains(substr string) error
	// WaitVisible blocks until the selector matches a visible element.
	WaitVisible(selector string) error
	// WaitDetached blocks until the selector no longer matches.
	WaitDetached(selector string) error
	// Press sends a key press to the page.
	Press(key string) error
	// Screenshot captures a full-page screenshot to the given path.
	Screenshot(path string) error
}
