package runlog

import (
	"encoding/csv"
	"os"

	"github.com/formrunner/formrunner/internal/domain"
)

// csvHeader is the fixed column layout of the operator-facing run log
var csvHeader = []string{"timestamp", "url", "status", "error"}

// stampLayout matches the timestamp format used in artifact file names
const stampLayout = "2006-01-02_15-04-05"

// AppendCSV appends one run row to the CSV log at path, writing the header
// first when the file does not exist yet.
func AppendCSV(path string, r *domain.RunResult) error {
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	row := []string{
		r.Timestamp.Format(stampLayout),
		r.URL,
		string(r.Status),
		r.Error,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
