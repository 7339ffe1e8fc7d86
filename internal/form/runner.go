package form

import (
	"time"

	"github.com/formrunner/formrunner/internal/domain"
)

// RunnerOptions configures a single submission run
type RunnerOptions struct {
	Fields []domain.FieldSpec
	Form   domain.FormConfig

	// SuccessShot and ErrorShot are screenshot destinations. Empty paths
	// disable capture. Error capture is best-effort: a failed screenshot
	// never masks the error that ended the run.
	SuccessShot string
	ErrorShot   string

	// Logf receives human-readable progress lines. Nil discards them.
	Logf func(format string, args ...any)
}

// Runner sequences one submission attempt: load page, fill every field in
// order, submit, wait for the success signal, capture artifacts. A run is
// a single pass with no retries; it is wholly successful or wholly failed.
type Runner struct {
	page     Page
	resolver *Resolver
	filler   *Filler
	opts     RunnerOptions
	state    domain.RunState
}

// NewRunner creates a runner over the given page
func NewRunner(page Page, opts RunnerOptions) *Runner {
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return &Runner{
		page:     page,
		resolver: NewResolver(page),
		filler:   NewFiller(page),
		opts:     opts,
		state:    domain.StateIdle,
	}
}

// State returns the runner's current state
func (r *Runner) State() domain.RunState {
	return r.state
}

// Run executes the submission attempt and returns exactly one RunResult.
// The result reports the error in human-readable form; the error itself is
// also returned for callers that dispatch on its type.
func (r *Runner) Run() (*domain.RunResult, error) {
	start := time.Now()
	result := &domain.RunResult{
		Timestamp: start,
		URL:       r.opts.Form.URL,
	}

	if err := r.navigate(); err != nil {
		return r.fail(result, start, err)
	}

	r.state = domain.StateFieldsFilling
	for _, spec := range r.opts.Fields {
		r.opts.Logf("filling %q (%s)", spec.Label, spec.Kind)
		el, err := r.resolver.Resolve(spec.Label, spec.Kind)
		if err != nil {
			return r.fail(result, start, err)
		}
		if err := r.filler.Fill(el, spec); err != nil {
			return r.fail(result, start, err)
		}
	}
	r.state = domain.StateFieldsFilled

	r.opts.Logf("submitting form")
	if err := submit(r.page, r.opts.Form); err != nil {
		return r.fail(result, start, err)
	}
	r.state = domain.StateSubmitted

	r.opts.Logf("waiting for success confirmation")
	if err := waitForSuccess(r.page, r.opts.Form); err != nil {
		return r.fail(result, start, err)
	}
	r.state = domain.StateSuccessConfirmed

	if r.opts.SuccessShot != "" {
		if err := r.page.Screenshot(r.opts.SuccessShot); err != nil {
			r.opts.Logf("screenshot failed: %v", err)
		} else {
			result.Screenshot = r.opts.SuccessShot
		}
	}

	result.Status = domain.RunSuccess
	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) navigate() error {
	r.opts.Logf("navigating to %s", r.opts.Form.URL)
	if err := r.page.Goto(r.opts.Form.URL); err != nil {
		return &NavigationError{URL: r.opts.Form.URL, Err: err}
	}
	if spinner := r.opts.Form.IdleSpinner; spinner != "" {
		if err := r.page.WaitDetached(spinner); err != nil {
			// The spinner outliving its timeout is suspicious but not
			// fatal; some forms keep a hidden spinner node around.
			r.opts.Logf("idle spinner did not disappear: %v", err)
		}
	}
	r.state = domain.StatePageLoaded
	return nil
}

// fail terminates the run: error screenshot (best-effort), failure result
func (r *Runner) fail(result *domain.RunResult, start time.Time, cause error) (*domain.RunResult, error) {
	r.state = domain.StateFailed
	r.opts.Logf("run failed: %v", cause)

	if r.opts.ErrorShot != "" {
		if err := r.page.Screenshot(r.opts.ErrorShot); err != nil {
			r.opts.Logf("error screenshot failed: %v", err)
		} else {
			result.Screenshot = r.opts.ErrorShot
		}
	}

	result.Status = domain.RunError
	result.Error = cause.Error()
	result.Duration = time.Since(start)
	return result, cause
}
