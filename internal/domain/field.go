package domain

import (
	"encoding/json"
	"fmt"
)

// FieldKind identifies the widget type of a form field
type FieldKind string

const (
	KindText         FieldKind = "text"
	KindLongText     FieldKind = "long_text"
	KindEmail        FieldKind = "email"
	KindURL          FieldKind = "url"
	KindTel          FieldKind = "tel"
	KindNumber       FieldKind = "number"
	KindDate         FieldKind = "date"
	KindCheckbox     FieldKind = "checkbox"
	KindSingleSelect FieldKind = "single_select"
	KindMultiSelect  FieldKind = "multi_select"
	KindAttachment   FieldKind = "attachment"
)

// Valid reports whether the kind is one of the supported field kinds
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindLongText, KindEmail, KindURL, KindTel, KindNumber,
		KindDate, KindCheckbox, KindSingleSelect, KindMultiSelect, KindAttachment:
		return true
	}
	return false
}

// IsSelect reports whether the kind is rendered as a custom select widget
// (a trigger that opens a floating option list) rather than a native input
func (k FieldKind) IsSelect() bool {
	return k == KindSingleSelect || k == KindMultiSelect
}

// FieldSpec describes one form field to fill: the exact visible label text,
// the widget kind, and the value whose shape must match the kind.
// Constructed once per run from the data file and read-only thereafter.
type FieldSpec struct {
	Label string    `json:"label"`
	Kind  FieldKind `json:"type"`

	// Exactly one of these is set, depending on Kind.
	Text    string   // scalar kinds (text, email, url, tel, number, date, long_text, attachment)
	Checked bool     // checkbox
	Options []string // multi_select, in selection order
}

// fieldSpecJSON is the wire shape of a FieldSpec in the data file
type fieldSpecJSON struct {
	Label string          `json:"label"`
	Kind  FieldKind       `json:"type"`
	Value json.RawMessage `json:"value"`
}

// UnmarshalJSON decodes a FieldSpec and enforces the kind/value shape
// invariant, so mismatches are rejected before any browser interaction.
func (f *FieldSpec) UnmarshalJSON(data []byte) error {
	var raw fieldSpecJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Label == "" {
		return fmt.Errorf("field is missing a label")
	}
	if !raw.Kind.Valid() {
		return fmt.Errorf("field %q: unsupported type %q", raw.Label, raw.Kind)
	}
	if len(raw.Value) == 0 {
		return fmt.Errorf("field %q: missing value", raw.Label)
	}

	f.Label = raw.Label
	f.Kind = raw.Kind

	switch raw.Kind {
	case KindCheckbox:
		if err := json.Unmarshal(raw.Value, &f.Checked); err != nil {
			return fmt.Errorf("field %q: checkbox value must be a boolean: %w", raw.Label, err)
		}
	case KindMultiSelect:
		if err := json.Unmarshal(raw.Value, &f.Options); err != nil {
			return fmt.Errorf("field %q: multi_select value must be an array of strings: %w", raw.Label, err)
		}
		if len(f.Options) == 0 {
			return fmt.Errorf("field %q: multi_select value must not be empty", raw.Label)
		}
	case KindNumber:
		// Accept JSON numbers as well as strings for convenience.
		var n json.Number
		if err := json.Unmarshal(raw.Value, &n); err != nil {
			var s string
			if err := json.Unmarshal(raw.Value, &s); err != nil {
				return fmt.Errorf("field %q: number value must be a number or string: %w", raw.Label, err)
			}
			f.Text = s
		} else {
			f.Text = n.String()
		}
	default:
		if err := json.Unmarshal(raw.Value, &f.Text); err != nil {
			return fmt.Errorf("field %q: %s value must be a string: %w", raw.Label, raw.Kind, err)
		}
	}

	return nil
}

// MarshalJSON encodes a FieldSpec back into its wire shape
func (f FieldSpec) MarshalJSON() ([]byte, error) {
	var value any
	switch f.Kind {
	case KindCheckbox:
		value = f.Checked
	case KindMultiSelect:
		value = f.Options
	default:
		value = f.Text
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fieldSpecJSON{Label: f.Label, Kind: f.Kind, Value: raw})
}
