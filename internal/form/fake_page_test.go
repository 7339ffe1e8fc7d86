package form

import "fmt"

// fakeControl is one scripted control in a fakePage
type fakeControl struct {
	value      string
	checked    bool
	isCheckbox bool
	isTrigger  bool
	clicks     int
	files      []string
	clickErr   error
	fillErr    error
}

// fakePage scripts the Page capability for engine tests. Controls are
// registered against label text or exact selector strings; option rows are
// only reachable while a trigger has been clicked open.
type fakePage struct {
	labeled   map[string]*fakeControl
	located   map[string]*fakeControl
	optionSet map[string]bool
	submitBtn *fakeControl

	gotoErr   error
	url       string
	navigated []string

	listOpen   bool
	escPresses int
	selected   []string

	visibleSelectors map[string]bool
	urlContains      map[string]bool
	detachedErr      error

	screenshots   []string
	screenshotErr error
}

func newFakePage() *fakePage {
	return &fakePage{
		labeled:          make(map[string]*fakeControl),
		located:          make(map[string]*fakeControl),
		optionSet:        make(map[string]bool),
		visibleSelectors: make(map[string]bool),
		urlContains:      make(map[string]bool),
	}
}

func (p *fakePage) Goto(url string) error {
	if p.gotoErr != nil {
		return p.gotoErr
	}
	p.url = url
	p.navigated = append(p.navigated, url)
	return nil
}

func (p *fakePage) Locator(selector string) Element {
	return &fakeElement{page: p, ctrl: p.located[selector]}
}

func (p *fakePage) ByLabel(label string) Element {
	return &fakeElement{page: p, ctrl: p.labeled[label]}
}

func (p *fakePage) OptionByText(text string) Element {
	return &fakeOption{page: p, text: text}
}

func (p *fakePage) SubmitButton() Element {
	return &fakeElement{page: p, ctrl: p.submitBtn}
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) WaitForURLContains(substr string) error {
	if p.urlContains[substr] {
		return nil
	}
	return fmt.Errorf("timeout waiting for url to contain %q", substr)
}

func (p *fakePage) WaitVisible(selector string) error {
	if p.visibleSelectors[selector] {
		return nil
	}
	return fmt.Errorf("timeout waiting for %q", selector)
}

func (p *fakePage) WaitDetached(selector string) error { return p.detachedErr }

func (p *fakePage) Press(key string) error {
	if key == "Escape" {
		p.listOpen = false
		p.escPresses++
	}
	return nil
}

func (p *fakePage) Screenshot(path string) error {
	if p.screenshotErr != nil {
		return p.screenshotErr
	}
	p.screenshots = append(p.screenshots, path)
	return nil
}

// fakeElement is a control-backed element; ctrl is nil when the selector
// matched nothing
type fakeElement struct {
	page *fakePage
	ctrl *fakeControl
}

func (e *fakeElement) Exists() (bool, error) { return e.ctrl != nil, nil }

func (e *fakeElement) Click() error {
	if e.ctrl == nil {
		return fmt.Errorf("click on missing element")
	}
	if e.ctrl.clickErr != nil {
		return e.ctrl.clickErr
	}
	e.ctrl.clicks++
	if e.ctrl.isCheckbox {
		e.ctrl.checked = !e.ctrl.checked
	}
	if e.ctrl.isTrigger {
		e.page.listOpen = true
	}
	return nil
}

func (e *fakeElement) Fill(value string) error {
	if e.ctrl == nil {
		return fmt.Errorf("fill on missing element")
	}
	if e.ctrl.fillErr != nil {
		return e.ctrl.fillErr
	}
	e.ctrl.value = value
	return nil
}

func (e *fakeElement) IsChecked() (bool, error) {
	if e.ctrl == nil {
		return false, fmt.Errorf("missing element")
	}
	return e.ctrl.checked, nil
}

func (e *fakeElement) InputValue() (string, error) {
	if e.ctrl == nil {
		return "", fmt.Errorf("missing element")
	}
	return e.ctrl.value, nil
}

func (e *fakeElement) SetInputFiles(path string) error {
	if e.ctrl == nil {
		return fmt.Errorf("missing element")
	}
	e.ctrl.files = append(e.ctrl.files, path)
	return nil
}

func (e *fakeElement) WaitVisible() error {
	if e.ctrl == nil {
		return fmt.Errorf("timeout waiting for element")
	}
	return nil
}

// fakeOption is an option row in a floating list; it only exists while the
// list is open, and resolves at call time the way a lazy locator does
type fakeOption struct {
	page *fakePage
	text string
}

func (o *fakeOption) visible() bool {
	return o.page.listOpen && o.page.optionSet[o.text]
}

func (o *fakeOption) Exists() (bool, error) { return o.visible(), nil }

func (o *fakeOption) Click() error {
	if !o.visible() {
		return fmt.Errorf("option %q is not visible", o.text)
	}
	o.page.selected = append(o.page.selected, o.text)
	return nil
}

func (o *fakeOption) WaitVisible() error {
	if !o.visible() {
		return fmt.Errorf("timeout waiting for option %q", o.text)
	}
	return nil
}

func (o *fakeOption) Fill(string) error             { return fmt.Errorf("option is not fillable") }
func (o *fakeOption) IsChecked() (bool, error)      { return false, fmt.Errorf("option has no checked state") }
func (o *fakeOption) InputValue() (string, error)   { return "", fmt.Errorf("option has no value") }
func (o *fakeOption) SetInputFiles(string) error    { return fmt.Errorf("option accepts no files") }
