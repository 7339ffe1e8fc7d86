package form

import (
	"fmt"
	"strings"

	"github.com/formrunner/formrunner/internal/domain"
)

// Resolver finds the interactive element for a field label. Matching is
// case-sensitive and exact; when several elements carry the same label the
// first in document order wins.
type Resolver struct {
	page Page
}

// NewResolver creates a resolver over the given page
func NewResolver(page Page) *Resolver {
	return &Resolver{page: page}
}

// Resolve returns the element to act on for the given label and kind.
// For select kinds the returned element is the widget trigger; the option
// list does not exist in the document until the trigger is opened, so
// option location is deferred to the filler.
func (r *Resolver) Resolve(label string, kind domain.FieldKind) (Element, error) {
	var candidates []Element
	switch {
	case kind.IsSelect():
		candidates = r.triggerCandidates(label)
	case kind == domain.KindCheckbox:
		candidates = r.checkboxCandidates(label)
	case kind == domain.KindAttachment:
		candidates = r.fileCandidates(label)
	default:
		candidates = r.inputCandidates(label)
	}

	for _, el := range candidates {
		ok, err := el.Exists()
		if err != nil {
			return nil, fmt.Errorf("resolving field %q: %w", label, err)
		}
		if ok {
			return el, nil
		}
	}

	return nil, &FieldNotFoundError{Label: label, Kind: kind}
}

// inputCandidates covers native text-style inputs. The XPath variants are
// what Airtable forms need; the accessible-label lookup is the fallback for
// forms with proper label association.
func (r *Resolver) inputCandidates(label string) []Element {
	base := labelXPath(label)
	return []Element{
		r.page.Locator("xpath=" + base + "/following::input[1]"),
		r.page.Locator("xpath=" + base + "/following::textarea[1]"),
		r.page.Locator("xpath=" + base + "//input"),
		r.page.Locator("xpath=" + base + "//textarea"),
		r.page.ByLabel(label),
	}
}

// triggerCandidates covers the clickable trigger of a custom select widget
func (r *Resolver) triggerCandidates(label string) []Element {
	base := labelXPath(label)
	return []Element{
		r.page.ByLabel(label),
		r.page.Locator("xpath=" + base +
			"/following::*[self::input or self::textarea or self::select or self::button][1]"),
		// Clicking the label itself focuses the associated control.
		r.page.Locator("xpath=" + base),
	}
}

func (r *Resolver) checkboxCandidates(label string) []Element {
	base := labelXPath(label)
	return []Element{
		r.page.ByLabel(label),
		r.page.Locator("xpath=" + base + "//input[@type='checkbox']"),
		r.page.Locator("xpath=" + base + "/following::input[@type='checkbox'][1]"),
	}
}

func (r *Resolver) fileCandidates(label string) []Element {
	base := labelXPath(label)
	return []Element{
		r.page.Locator("xpath=" + base + "//input[@type='file']"),
		r.page.Locator("xpath=" + base + "/following::input[@type='file'][1]"),
	}
}

// labelXPath builds the exact-text label locator. normalize-space trims
// surrounding whitespace but never relaxes case or wording.
func labelXPath(label string) string {
	return fmt.Sprintf("//label[normalize-space()=%s]", xpathLiteral(label))
}

// xpathLiteral quotes a string for use in an XPath expression. XPath 1.0
// has no escape sequences, so labels containing single quotes are stitched
// together with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ",") + ")"
}
