// Package artifacts manages the per-run output directory: screenshots
// captured at the end of a run and the append-only CSV log.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const stampLayout = "2006-01-02_15-04-05"

// Dir is a run output directory. All paths it hands out live under Root.
type Dir struct {
	Root string
}

// New ensures the output directory exists and returns it.
func New(root string) (*Dir, error) {
	if root == "" {
		root = "output"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Dir{Root: root}, nil
}

// NewRunID returns a fresh identifier for a single form run.
func NewRunID() string {
	return uuid.NewString()
}

// Stamp formats t the way artifact filenames embed it.
func Stamp(t time.Time) string {
	return t.Format(stampLayout)
}

// SuccessShot returns the screenshot path for a run that confirmed success.
func (d *Dir) SuccessShot(t time.Time) string {
	return filepath.Join(d.Root, Stamp(t)+".png")
}

// ErrorShot returns the screenshot path for a failed run.
func (d *Dir) ErrorShot(t time.Time) string {
	return filepath.Join(d.Root, Stamp(t)+"_error.png")
}

// CSVPath returns the location of the append-only run log.
func (d *Dir) CSVPath() string {
	return filepath.Join(d.Root, "run_log.csv")
}
