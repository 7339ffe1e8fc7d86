package form

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/formrunner/formrunner/internal/domain"
)

func TestFiller_Text(t *testing.T) {
	page := newFakePage()
	ctrl := &fakeControl{}
	filler := NewFiller(page)

	spec := domain.FieldSpec{Label: "Full Name", Kind: domain.KindText, Text: "Ada Lovelace"}
	if err := filler.Fill(&fakeElement{page: page, ctrl: ctrl}, spec); err != nil {
		t.Fatal(err)
	}
	if ctrl.value != "Ada Lovelace" {
		t.Errorf("value = %q, want %q", ctrl.value, "Ada Lovelace")
	}
}

func TestFiller_CheckboxIdempotent(t *testing.T) {
	page := newFakePage()
	ctrl := &fakeControl{isCheckbox: true}
	filler := NewFiller(page)
	spec := domain.FieldSpec{Label: "Agree", Kind: domain.KindCheckbox, Checked: true}

	// Filling true twice must check exactly once.
	for i := 0; i < 2; i++ {
		if err := filler.Fill(&fakeElement{page: page, ctrl: ctrl}, spec); err != nil {
			t.Fatal(err)
		}
	}
	if !ctrl.checked {
		t.Error("checkbox should be checked")
	}
	if ctrl.clicks != 1 {
		t.Errorf("clicks = %d, want 1", ctrl.clicks)
	}
}

func TestFiller_CheckboxAlreadyInDesiredState(t *testing.T) {
	page := newFakePage()
	ctrl := &fakeControl{isCheckbox: true, checked: true}
	filler := NewFiller(page)
	spec := domain.FieldSpec{Label: "Agree", Kind: domain.KindCheckbox, Checked: true}

	if err := filler.Fill(&fakeElement{page: page, ctrl: ctrl}, spec); err != nil {
		t.Fatal(err)
	}
	if ctrl.clicks != 0 {
		t.Errorf("clicks = %d, want 0", ctrl.clicks)
	}
}

func TestFiller_SingleSelect(t *testing.T) {
	page := newFakePage()
	page.optionSet["Blue"] = true
	page.optionSet["Light Blue"] = true
	trigger := &fakeControl{isTrigger: true}
	filler := NewFiller(page)

	spec := domain.FieldSpec{Label: "Color", Kind: domain.KindSingleSelect, Text: "Blue"}
	if err := filler.Fill(&fakeElement{page: page, ctrl: trigger}, spec); err != nil {
		t.Fatal(err)
	}
	if len(page.selected) != 1 || page.selected[0] != "Blue" {
		t.Errorf("selected = %v, want [Blue]", page.selected)
	}
}

func TestFiller_SingleSelectExactMatchOnly(t *testing.T) {
	page := newFakePage()
	page.optionSet["Blue"] = true
	trigger := &fakeControl{isTrigger: true}
	filler := NewFiller(page)

	// Case differs: must fail loudly, never pick the near match.
	spec := domain.FieldSpec{Label: "Color", Kind: domain.KindSingleSelect, Text: "blue"}
	err := filler.Fill(&fakeElement{page: page, ctrl: trigger}, spec)
	var fe *FillError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FillError", err)
	}
	if fe.Label != "Color" || fe.Kind != domain.KindSingleSelect {
		t.Errorf("FillError = %+v, want label Color kind single_select", fe)
	}
	if len(page.selected) != 0 {
		t.Errorf("selected = %v, want none", page.selected)
	}
}

func TestFiller_MultiSelect(t *testing.T) {
	page := newFakePage()
	for _, o := range []string{"Go", "SQL", "Rust"} {
		page.optionSet[o] = true
	}
	trigger := &fakeControl{isTrigger: true}
	filler := NewFiller(page)

	spec := domain.FieldSpec{Label: "Topics", Kind: domain.KindMultiSelect, Options: []string{"SQL", "Go"}}
	if err := filler.Fill(&fakeElement{page: page, ctrl: trigger}, spec); err != nil {
		t.Fatal(err)
	}
	if len(page.selected) != 2 || page.selected[0] != "SQL" || page.selected[1] != "Go" {
		t.Errorf("selected = %v, want [SQL Go]", page.selected)
	}
	if page.listOpen {
		t.Error("option list should be closed after multi-select fill")
	}
	if page.escPresses != 1 {
		t.Errorf("escape presses = %d, want 1", page.escPresses)
	}
}

func TestFiller_MultiSelectMissingOption(t *testing.T) {
	page := newFakePage()
	page.optionSet["Go"] = true
	trigger := &fakeControl{isTrigger: true}
	filler := NewFiller(page)

	spec := domain.FieldSpec{Label: "Topics", Kind: domain.KindMultiSelect, Options: []string{"Go", "COBOL"}}
	err := filler.Fill(&fakeElement{page: page, ctrl: trigger}, spec)
	var fe *FillError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FillError", err)
	}
	// The existing option was selected before the miss; the run still fails.
	if len(page.selected) != 1 || page.selected[0] != "Go" {
		t.Errorf("selected = %v, want [Go]", page.selected)
	}
}

func TestFiller_Attachment(t *testing.T) {
	page := newFakePage()
	ctrl := &fakeControl{}
	filler := NewFiller(page)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	spec := domain.FieldSpec{Label: "Resume", Kind: domain.KindAttachment, Text: path}
	if err := filler.Fill(&fakeElement{page: page, ctrl: ctrl}, spec); err != nil {
		t.Fatal(err)
	}
	if len(ctrl.files) != 1 || ctrl.files[0] != path {
		t.Errorf("files = %v, want [%s]", ctrl.files, path)
	}
}

func TestFiller_AttachmentMissingFile(t *testing.T) {
	page := newFakePage()
	ctrl := &fakeControl{}
	filler := NewFiller(page)

	spec := domain.FieldSpec{
		Label: "Resume",
		Kind:  domain.KindAttachment,
		Text:  filepath.Join(t.TempDir(), "nope.pdf"),
	}
	err := filler.Fill(&fakeElement{page: page, ctrl: ctrl}, spec)
	var fe *FillError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FillError", err)
	}
	if len(ctrl.files) != 0 {
		t.Error("file input should not be touched when the path does not exist")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-14", "2026-03-14"},
		{"03/14/2026", "2026-03-14"},
		{"3/4/2026", "2026-03-04"},
		{"14.03.2026", "2026-03-14"},
		{"Mar 14, 2026", "2026-03-14"},
		{"14 Mar 2026", "2026-03-14"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := normalizeDate(tt.in); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
