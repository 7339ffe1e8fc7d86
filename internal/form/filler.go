package form

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/formrunner/formrunner/internal/domain"
)

// fillFunc applies one field kind's interaction sequence
type fillFunc func(f *Filler, el Element, spec domain.FieldSpec) error

// strategies selects the fill behavior per field kind. Each kind has
// exactly one strategy so they can be tested in isolation.
var strategies = map[domain.FieldKind]fillFunc{
	domain.KindText:         (*Filler).fillText,
	domain.KindLongText:     (*Filler).fillText,
	domain.KindEmail:        (*Filler).fillText,
	domain.KindURL:          (*Filler).fillText,
	domain.KindTel:          (*Filler).fillText,
	domain.KindNumber:       (*Filler).fillText,
	domain.KindDate:         (*Filler).fillDate,
	domain.KindCheckbox:     (*Filler).fillCheckbox,
	domain.KindSingleSelect: (*Filler).fillSingleSelect,
	domain.KindMultiSelect:  (*Filler).fillMultiSelect,
	domain.KindAttachment:   (*Filler).fillAttachment,
}

// Filler applies field values through the page capability. Resolution has
// already happened; for select kinds the element is the widget trigger.
type Filler struct {
	page Page
}

// NewFiller creates a filler over the given page
func NewFiller(page Page) *Filler {
	return &Filler{page: page}
}

// Fill applies the field's value to the resolved element. Failures are
// reported as *FillError carrying the field's label and kind.
func (f *Filler) Fill(el Element, spec domain.FieldSpec) error {
	fn, ok := strategies[spec.Kind]
	if !ok {
		return &FillError{Label: spec.Label, Kind: spec.Kind, Err: fmt.Errorf("unsupported field kind")}
	}
	if err := fn(f, el, spec); err != nil {
		if fe, isFill := err.(*FillError); isFill {
			return fe
		}
		return &FillError{Label: spec.Label, Kind: spec.Kind, Err: err}
	}
	return nil
}

func (f *Filler) fillText(el Element, spec domain.FieldSpec) error {
	return el.Fill(spec.Text)
}

// fillDate normalizes the value to the YYYY-MM-DD shape native date inputs
// expect before filling
func (f *Filler) fillDate(el Element, spec domain.FieldSpec) error {
	return el.Fill(normalizeDate(spec.Text))
}

// fillCheckbox clicks only when the desired state differs from the current
// one, so filling the same boolean twice never toggles it back.
func (f *Filler) fillCheckbox(el Element, spec domain.FieldSpec) error {
	checked, err := el.IsChecked()
	if err != nil {
		return err
	}
	if checked == spec.Checked {
		return nil
	}
	return el.Click()
}

// fillSingleSelect opens the trigger and clicks the option whose visible
// text exactly equals the value. No fuzzy or partial matching: a missing
// option fails loudly rather than risk picking the wrong one.
func (f *Filler) fillSingleSelect(el Element, spec domain.FieldSpec) error {
	if err := el.Click(); err != nil {
		return fmt.Errorf("opening select: %w", err)
	}
	return f.clickOption(spec.Text)
}

// fillMultiSelect opens the trigger once, then selects each option in order.
// The option list may re-render after every click, so each option is
// located fresh. The list is closed when done so later fields are reachable.
func (f *Filler) fillMultiSelect(el Element, spec domain.FieldSpec) error {
	if err := el.Click(); err != nil {
		return fmt.Errorf("opening select: %w", err)
	}
	for _, choice := range spec.Options {
		if err := f.clickOption(choice); err != nil {
			return err
		}
	}
	return f.page.Press("Escape")
}

func (f *Filler) clickOption(text string) error {
	opt := f.page.OptionByText(text)
	if err := opt.WaitVisible(); err != nil {
		return fmt.Errorf("option %q not found: %w", text, err)
	}
	return opt.Click()
}

// fillAttachment verifies the file exists locally before touching the
// browser, then points the file input at it
func (f *Filler) fillAttachment(el Element, spec domain.FieldSpec) error {
	path, err := filepath.Abs(spec.Text)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("attachment %s: %w", path, err)
	}
	return el.SetInputFiles(path)
}

// dateLayouts are the input shapes accepted for date fields, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// normalizeDate converts a recognized date string to YYYY-MM-DD. Values in
// no recognized layout pass through unchanged and fail at the input itself.
func normalizeDate(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}
