package form

import (
	"errors"
	"testing"

	"github.com/formrunner/formrunner/internal/domain"
)

func TestResolver_ByLabel(t *testing.T) {
	page := newFakePage()
	ctrl := &fakeControl{}
	page.labeled["Email"] = ctrl

	r := NewResolver(page)
	el, err := r.Resolve("Email", domain.KindEmail)
	if err != nil {
		t.Fatal(err)
	}
	if el.(*fakeElement).ctrl != ctrl {
		t.Error("resolved a different control than the labeled one")
	}
}

func TestResolver_XPathBeforeLabelForInputs(t *testing.T) {
	page := newFakePage()
	byXPath := &fakeControl{}
	byLabel := &fakeControl{}
	page.located["xpath="+labelXPath("City")+"/following::input[1]"] = byXPath
	page.labeled["City"] = byLabel

	r := NewResolver(page)
	el, err := r.Resolve("City", domain.KindText)
	if err != nil {
		t.Fatal(err)
	}
	// First candidate in document order wins; the label lookup is the
	// fallback for native inputs.
	if el.(*fakeElement).ctrl != byXPath {
		t.Error("expected the XPath candidate to win")
	}
}

func TestResolver_SelectTriggerPrefersLabel(t *testing.T) {
	page := newFakePage()
	trigger := &fakeControl{isTrigger: true}
	page.labeled["Country"] = trigger

	r := NewResolver(page)
	el, err := r.Resolve("Country", domain.KindSingleSelect)
	if err != nil {
		t.Fatal(err)
	}
	if el.(*fakeElement).ctrl != trigger {
		t.Error("expected the labeled trigger")
	}
}

func TestResolver_CheckboxFallsBackToNestedInput(t *testing.T) {
	page := newFakePage()
	box := &fakeControl{isCheckbox: true}
	page.located["xpath="+labelXPath("Agree")+"//input[@type='checkbox']"] = box

	r := NewResolver(page)
	el, err := r.Resolve("Agree", domain.KindCheckbox)
	if err != nil {
		t.Fatal(err)
	}
	if el.(*fakeElement).ctrl != box {
		t.Error("expected the nested checkbox input")
	}
}

func TestResolver_NotFound(t *testing.T) {
	page := newFakePage()
	r := NewResolver(page)

	_, err := r.Resolve("Nonexistent Field", domain.KindText)
	var nf *FieldNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *FieldNotFoundError", err)
	}
	if nf.Label != "Nonexistent Field" {
		t.Errorf("Label = %q, want the exact label", nf.Label)
	}
	if nf.Kind != domain.KindText {
		t.Errorf("Kind = %q, want %q", nf.Kind, domain.KindText)
	}
}

func TestResolver_ApproximateLabelFails(t *testing.T) {
	page := newFakePage()
	page.labeled["Full Name"] = &fakeControl{}

	r := NewResolver(page)
	// Exact match is deliberate: "full name" must not resolve "Full Name".
	_, err := r.Resolve("full name", domain.KindText)
	var nf *FieldNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *FieldNotFoundError", err)
	}
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Full Name", "'Full Name'"},
		{`Say "hi"`, `'Say "hi"'`},
		{"What's up", `concat('What',"'",'s up')`},
	}
	for _, tt := range tests {
		if got := xpathLiteral(tt.in); got != tt.want {
			t.Errorf("xpathLiteral(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
