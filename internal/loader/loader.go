// Package loader reads field data and form configuration from disk.
// Field files carry a JSON array of field specs; form files carry the
// target URL and optional selectors; job files bundle both so a whole
// submission can live in one file.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/formrunner/formrunner/internal/domain"
)

// Job bundles everything one form run needs.
type Job struct {
	Name   string
	Form   domain.FormConfig
	Fields []domain.FieldSpec
}

type jobFile struct {
	Form   domain.FormConfig  `json:"form"`
	Fields []domain.FieldSpec `json:"fields"`
}

// LoadFields reads a JSON array of field specs.
func LoadFields(path string) ([]domain.FieldSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field data: %w", err)
	}
	var fields []domain.FieldSpec
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s: no fields defined", filepath.Base(path))
	}
	return fields, nil
}

// LoadForm reads a form configuration file.
func LoadForm(path string) (*domain.FormConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading form config: %w", err)
	}
	var form domain.FormConfig
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &form, nil
}

// LoadJob reads a bundled job file containing both form and fields.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job: %w", err)
	}
	var jf jobFile
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := jf.Form.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(jf.Fields) == 0 {
		return nil, fmt.Errorf("%s: no fields defined", filepath.Base(path))
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Job{Name: name, Form: jf.Form, Fields: jf.Fields}, nil
}

// LoadJobsDir reads every *.json job in dir, sorted by filename.
func LoadJobsDir(dir string) ([]*Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading jobs directory: %w", err)
	}

	var jobs []*Job
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		job, err := LoadJob(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs, nil
}
