package domain

import "time"

// RunStatus is the terminal outcome of a submission run
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunError   RunStatus = "error"
)

// RunState tracks the orchestrator through a single submission attempt.
// A run moves strictly forward; any failure jumps to StateFailed.
type RunState string

const (
	StateIdle             RunState = "idle"
	StatePageLoaded       RunState = "page_loaded"
	StateFieldsFilling    RunState = "fields_filling"
	StateFieldsFilled     RunState = "fields_filled"
	StateSubmitted        RunState = "submitted"
	StateSuccessConfirmed RunState = "success_confirmed"
	StateFailed           RunState = "failed"
)

// RunResult is the persisted record of one submission attempt.
// Created exactly once per run and never mutated after write.
type RunResult struct {
	ID         string
	Timestamp  time.Time
	URL        string
	Status     RunStatus
	Error      string
	Screenshot string
	Duration   time.Duration
}

// Failed reports whether the run ended in error
func (r *RunResult) Failed() bool {
	return r.Status != RunSuccess
}
