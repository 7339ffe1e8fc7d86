package browser

import (
	"fmt"
	"regexp"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/formrunner/formrunner/internal/form"
)

// submitName matches the accessible name of a submit control
var submitName = regexp.MustCompile(`(?i)submit`)

// PageAdapter implements form.Page against a Playwright page
type PageAdapter struct {
	page    pw.Page
	timeout time.Duration
}

var _ form.Page = (*PageAdapter)(nil)

func (p *PageAdapter) Goto(url string) error {
	if _, err := p.page.Goto(url, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateDomcontentloaded,
		Timeout:   pw.Float(float64(p.timeout.Milliseconds())),
	}); err != nil {
		return err
	}
	// Airtable forms render fields after the document loads; wait for the
	// network to settle before anyone goes looking for labels.
	return p.page.WaitForLoadState(pw.PageWaitForLoadStateOptions{
		State:   pw.LoadStateNetworkidle,
		Timeout: pw.Float(float64(p.timeout.Milliseconds())),
	})
}

func (p *PageAdapter) Locator(selector string) form.Element {
	return &elementAdapter{loc: p.page.Locator(selector).First()}
}

func (p *PageAdapter) ByLabel(label string) form.Element {
	loc := p.page.GetByLabel(label, pw.PageGetByLabelOptions{Exact: pw.Bool(true)})
	return &elementAdapter{loc: loc.First()}
}

func (p *PageAdapter) OptionByText(text string) form.Element {
	loc := p.page.GetByRole(pw.AriaRoleOption, pw.PageGetByRoleOptions{
		Name:  text,
		Exact: pw.Bool(true),
	})
	return &elementAdapter{loc: loc.First()}
}

func (p *PageAdapter) SubmitButton() form.Element {
	loc := p.page.GetByRole(pw.AriaRoleButton, pw.PageGetByRoleOptions{
		Name: submitName,
	})
	return &elementAdapter{loc: loc.First()}
}

func (p *PageAdapter) URL() string {
	return p.page.URL()
}

func (p *PageAdapter) WaitForURLContains(substr string) error {
	pattern := regexp.MustCompile(regexp.QuoteMeta(substr))
	if err := p.page.WaitForURL(pattern, pw.PageWaitForURLOptions{
		Timeout: pw.Float(float64(p.timeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("url is %s: %w", p.page.URL(), err)
	}
	return nil
}

func (p *PageAdapter) WaitVisible(selector string) error {
	return p.page.Locator(selector).First().WaitFor(pw.LocatorWaitForOptions{
		State:   pw.WaitForSelectorStateVisible,
		Timeout: pw.Float(float64(p.timeout.Milliseconds())),
	})
}

func (p *PageAdapter) WaitDetached(selector string) error {
	return p.page.Locator(selector).First().WaitFor(pw.LocatorWaitForOptions{
		State:   pw.WaitForSelectorStateDetached,
		Timeout: pw.Float(float64(p.timeout.Milliseconds())),
	})
}

func (p *PageAdapter) Press(key string) error {
	return p.page.Keyboard().Press(key)
}

func (p *PageAdapter) Screenshot(path string) error {
	_, err := p.page.Screenshot(pw.PageScreenshotOptions{
		Path:     pw.String(path),
		FullPage: pw.Bool(true),
	})
	return err
}

// elementAdapter implements form.Element over a (lazy) Playwright locator
type elementAdapter struct {
	loc pw.Locator
}

func (e *elementAdapter) Exists() (bool, error) {
	count, err := e.loc.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (e *elementAdapter) Click() error {
	return e.loc.Click()
}

func (e *elementAdapter) Fill(value string) error {
	return e.loc.Fill(value)
}

func (e *elementAdapter) IsChecked() (bool, error) {
	return e.loc.IsChecked()
}

func (e *elementAdapter) InputValue() (string, error) {
	return e.loc.InputValue()
}

func (e *elementAdapter) SetInputFiles(path string) error {
	return e.loc.SetInputFiles(path)
}

func (e *elementAdapter) WaitVisible() error {
	return e.loc.WaitFor(pw.LocatorWaitForOptions{
		State: pw.WaitForSelectorStateVisible,
	})
}
