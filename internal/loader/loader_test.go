package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/formrunner/formrunner/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.json", `[
		{"label": "Name", "type": "text", "value": "Ada Lovelace"},
		{"label": "Subscribe", "type": "checkbox", "value": true},
		{"label": "Topics", "type": "multi_select", "value": ["Go", "Testing"]}
	]`)

	fields, err := LoadFields(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(fields))
	}
	if fields[0].Kind != domain.KindText || fields[0].Text != "Ada Lovelace" {
		t.Errorf("field[0] = %+v", fields[0])
	}
	if !fields[1].Checked {
		t.Error("checkbox value should be true")
	}
	if len(fields[2].Options) != 2 {
		t.Errorf("multi select options = %v", fields[2].Options)
	}
}

func TestLoadFields_BadShape(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.json",
		`[{"label": "Subscribe", "type": "checkbox", "value": "yes"}]`)

	_, err := LoadFields(path)
	if err == nil {
		t.Fatal("expected error for non-boolean checkbox value")
	}
}

func TestLoadFields_Empty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.json", `[]`)

	_, err := LoadFields(path)
	if err == nil || !strings.Contains(err.Error(), "no fields") {
		t.Errorf("err = %v, want no-fields error", err)
	}
}

func TestLoadForm(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{
		"url": "https://example.com/apply",
		"success_selector": "#thanks"
	}`)

	form, err := LoadForm(path)
	if err != nil {
		t.Fatal(err)
	}
	if form.URL != "https://example.com/apply" {
		t.Errorf("URL = %q", form.URL)
	}
	if form.SuccessSelector != "#thanks" {
		t.Errorf("SuccessSelector = %q", form.SuccessSelector)
	}
}

func TestLoadForm_MissingURL(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"success_selector": "#ok"}`)

	_, err := LoadForm(path)
	if err == nil {
		t.Fatal("expected error for form without URL")
	}
}

func TestLoadJob(t *testing.T) {
	path := writeFile(t, t.TempDir(), "signup.json", `{
		"form": {"url": "https://example.com/signup"},
		"fields": [{"label": "Email", "type": "email", "value": "ada@example.com"}]
	}`)

	job, err := LoadJob(path)
	if err != nil {
		t.Fatal(err)
	}
	if job.Name != "signup" {
		t.Errorf("Name = %q, want signup", job.Name)
	}
	if job.Form.URL != "https://example.com/signup" {
		t.Errorf("Form.URL = %q", job.Form.URL)
	}
	if len(job.Fields) != 1 || job.Fields[0].Kind != domain.KindEmail {
		t.Errorf("Fields = %+v", job.Fields)
	}
}

func TestLoadJobsDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"form": {"url": "https://x/b"}, "fields": [{"label": "A", "type": "text", "value": "1"}]}`)
	writeFile(t, dir, "a.json", `{"form": {"url": "https://x/a"}, "fields": [{"label": "A", "type": "text", "value": "1"}]}`)
	writeFile(t, dir, "notes.txt", "not a job")

	jobs, err := LoadJobsDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}
	if jobs[0].Name != "a" || jobs[1].Name != "b" {
		t.Errorf("order = %s, %s, want a, b", jobs[0].Name, jobs[1].Name)
	}
}
