// Package browser implements the form.Page capability on a real Chromium
// instance driven through Playwright.
package browser

import (
	"fmt"
	"time"

	pw "github.com/playwright-community/playwright-go"
)

// DefaultTimeout bounds every wait in a run: navigation, spinner
// disappearance, option-list render, and success confirmation.
const DefaultTimeout = 20 * time.Second

// Options configures a browser session
type Options struct {
	Headless bool
	Timeout  time.Duration
}

// Session owns the Playwright driver, browser, context, and page for one
// run. Acquire with NewSession, release with Close on every exit path.
type Session struct {
	driver  *pw.Playwright
	browser pw.Browser
	context pw.BrowserContext
	page    pw.Page
	timeout time.Duration
}

// NewSession launches Chromium and opens a fresh page with the configured
// default timeout applied to all operations.
func NewSession(opts Options) (*Session, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	driver, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	browser, err := driver.Chromium.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(opts.Headless),
	})
	if err != nil {
		driver.Stop()
		return nil, fmt.Errorf("launching chromium: %w", err)
	}

	context, err := browser.NewContext(pw.BrowserNewContextOptions{
		AcceptDownloads: pw.Bool(true),
	})
	if err != nil {
		browser.Close()
		driver.Stop()
		return nil, fmt.Errorf("creating browser context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		driver.Stop()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	page.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))

	return &Session{
		driver:  driver,
		browser: browser,
		context: context,
		page:    page,
		timeout: opts.Timeout,
	}, nil
}

// Page returns the form.Page capability backed by this session
func (s *Session) Page() *PageAdapter {
	return &PageAdapter{page: s.page, timeout: s.timeout}
}

// Close releases the page, context, browser, and driver. Safe to defer
// immediately after NewSession.
func (s *Session) Close() {
	if s.page != nil {
		s.page.Close()
	}
	if s.context != nil {
		s.context.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
	if s.driver != nil {
		s.driver.Stop()
	}
}

// Install downloads the Playwright driver and the Chromium browser if they
// are not already present. One-time setup, safe to call repeatedly.
func Install() error {
	return pw.Install(&pw.RunOptions{Browsers: []string{"chromium"}})
}
