// Package run wires a form submission end to end: open a browser page,
// drive the fill/submit sequence, then persist and announce the outcome.
package run

import (
	"fmt"
	"time"

	"github.com/formrunner/formrunner/internal/artifacts"
	"github.com/formrunner/formrunner/internal/config"
	"github.com/formrunner/formrunner/internal/domain"
	"github.com/formrunner/formrunner/internal/form"
	"github.com/formrunner/formrunner/internal/loader"
	"github.com/formrunner/formrunner/internal/notify"
	"github.com/formrunner/formrunner/internal/runlog"
)

// PageFactory opens a browser page. The returned close func releases the
// whole browser stack behind the page.
type PageFactory func(headless bool, timeoutMS float64) (form.Page, func() error, error)

// Service executes form runs and records their outcomes.
type Service struct {
	cfg      *config.Config
	store    *runlog.Store
	dir      *artifacts.Dir
	notifier notify.Notifier
	openPage PageFactory
	logf     func(format string, args ...any)
}

// NewService assembles a run service. store and notifier may be nil when
// persistence or notifications are disabled.
func NewService(cfg *config.Config, store *runlog.Store, dir *artifacts.Dir, notifier notify.Notifier, openPage PageFactory, logf func(string, ...any)) *Service {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Service{
		cfg:      cfg,
		store:    store,
		dir:      dir,
		notifier: notifier,
		openPage: openPage,
		logf:     logf,
	}
}

// Execute performs one submission attempt. The returned result is always
// non-nil when the browser could be opened; the error mirrors the result's
// failure so callers can dispatch on its type.
func (s *Service) Execute(formCfg domain.FormConfig, fields []domain.FieldSpec) (*domain.RunResult, error) {
	if err := formCfg.Validate(); err != nil {
		return nil, err
	}

	page, closePage, err := s.openPage(s.cfg.Browser.Headless, s.cfg.Browser.TimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("opening browser: %w", err)
	}
	defer closePage()

	now := time.Now()
	runner := form.NewRunner(page, form.RunnerOptions{
		Fields:      fields,
		Form:        formCfg,
		SuccessShot: s.dir.SuccessShot(now),
		ErrorShot:   s.dir.ErrorShot(now),
		Logf:        s.logf,
	})

	result, runErr := runner.Run()
	result.ID = artifacts.NewRunID()

	s.record(result)
	return result, runErr
}

// ExecuteJob runs a bundled job file.
func (s *Service) ExecuteJob(job *loader.Job) (*domain.RunResult, error) {
	s.logf("running job %q", job.Name)
	return s.Execute(job.Form, job.Fields)
}

// ExecuteAll runs jobs sequentially, never stopping on a failed run.
// It returns the number of failed runs.
func (s *Service) ExecuteAll(jobs []*loader.Job) int {
	failed := 0
	for _, job := range jobs {
		result, err := s.ExecuteJob(job)
		if err != nil {
			failed++
			if result != nil {
				s.logf("job %q failed: %s", job.Name, result.Error)
			} else {
				s.logf("job %q failed: %v", job.Name, err)
			}
		}
	}
	return failed
}

// Notify sends an out-of-band notification through the service's
// notifier, e.g. a batch-level completion message.
func (s *Service) Notify(n notify.Notification) error {
	return s.notifier.Send(n)
}

// record persists the result to every configured sink. Sink failures are
// logged, never surfaced: the run outcome already belongs to the caller.
func (s *Service) record(result *domain.RunResult) {
	if s.store != nil {
		if err := s.store.SaveResult(result); err != nil {
			s.logf("saving run to database: %v", err)
		}
	}
	if err := runlog.AppendCSV(s.dir.CSVPath(), result); err != nil {
		s.logf("appending run log: %v", err)
	}
	if err := s.notifier.Send(notify.ForResult(result)); err != nil {
		s.logf("sending notification: %v", err)
	}
}
